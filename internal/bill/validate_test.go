package bill

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AllowedExtension", func() {
	It("accepts jpg, jpeg and png", func() {
		Expect(AllowedExtension("receipt.jpg")).To(BeTrue())
		Expect(AllowedExtension("receipt.jpeg")).To(BeTrue())
		Expect(AllowedExtension("receipt.png")).To(BeTrue())
	})

	It("is case-insensitive", func() {
		Expect(AllowedExtension("receipt.PNG")).To(BeTrue())
		Expect(AllowedExtension("receipt.Jpg")).To(BeTrue())
	})

	It("only looks at the substring after the last dot", func() {
		Expect(AllowedExtension("a.b.PNG")).To(BeTrue())
		Expect(AllowedExtension("a.png.pdf")).To(BeFalse())
	})

	It("rejects other extensions", func() {
		Expect(AllowedExtension("a.pdf")).To(BeFalse())
		Expect(AllowedExtension("a.gif")).To(BeFalse())
	})

	It("rejects a filename without an extension", func() {
		Expect(AllowedExtension("a")).To(BeFalse())
		Expect(AllowedExtension("")).To(BeFalse())
	})

	It("rejects a filename ending with a dot", func() {
		Expect(AllowedExtension("a.")).To(BeFalse())
	})
})
