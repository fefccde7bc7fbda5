package bill

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FormatDate", func() {
	When("the date is well-formed", func() {
		It("renders the French short form", func() {
			Expect(FormatDate("2004-04-04")).To(Equal("4 Avr. 04"))
		})

		It("drops the leading zero of the day", func() {
			Expect(FormatDate("2001-01-01")).To(Equal("1 Jan. 01"))
		})

		It("keeps two digits for the year", func() {
			Expect(FormatDate("2022-12-25")).To(Equal("25 Déc. 22"))
		})
	})

	When("the date is malformed", func() {
		It("returns an error", func() {
			_, err := FormatDate("not-a-date")
			Expect(err).To(HaveOccurred())
		})

		It("returns an error for an empty string", func() {
			_, err := FormatDate("")
			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("FormatStatus", func() {
	It("maps pending to its display label", func() {
		Expect(FormatStatus("pending")).To(Equal("En attente"))
	})

	It("maps accepted to its display label", func() {
		Expect(FormatStatus("accepted")).To(Equal("Accepté"))
	})

	It("maps refused to its display label", func() {
		Expect(FormatStatus("refused")).To(Equal("Refused"))
	})

	It("rejects an unmapped status instead of defaulting", func() {
		_, err := FormatStatus("archived")
		Expect(err).To(MatchError(ContainSubstring("archived")))
	})
})
