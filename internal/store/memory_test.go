package store

import (
	"context"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/billed/expense-client/internal/bill"
)

var _ = Describe("MemoryStore", func() {
	var (
		files    *LocalStorage
		resource bill.BillsResource
	)

	BeforeEach(func() {
		var err error
		files, err = NewLocalStorage(filepath.Join(GinkgoT().TempDir(), "receipts"))
		Expect(err).NotTo(HaveOccurred())
		resource = NewMemoryStore(files).Bills()
	})

	Describe("Create", func() {
		It("assigns a key and keeps the attachment", func() {
			created, err := resource.Create(context.Background(), bill.CreateFilePayload{
				Email:    "employee@test.tld",
				FileName: "image.png",
				File:     []byte("image bytes"),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Key).NotTo(BeEmpty())
			Expect(created.FileURL).To(ContainSubstring("image.png"))

			data, err := files.Get(created.FileURL)
			Expect(err).NotTo(HaveOccurred())
			Expect(data).To(Equal([]byte("image bytes")))
		})

		It("opens a pending record for the file", func() {
			created, err := resource.Create(context.Background(), bill.CreateFilePayload{
				Email:    "employee@test.tld",
				FileName: "image.png",
			})
			Expect(err).NotTo(HaveOccurred())

			bills, err := resource.List(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(bills).To(HaveLen(1))
			Expect(bills[0].ID).To(Equal(created.Key))
			Expect(bills[0].Status).To(Equal(bill.StatusPending))
		})
	})

	Describe("Update", func() {
		It("fills in the record opened by Create", func() {
			created, err := resource.Create(context.Background(), bill.CreateFilePayload{
				Email:    "employee@test.tld",
				FileName: "image.png",
			})
			Expect(err).NotTo(HaveOccurred())

			updated, err := resource.Update(context.Background(), bill.UpdatePayload{
				Data: &bill.Bill{
					Email:    "employee@test.tld",
					Type:     "Transports",
					Name:     "Vol Paris Londres",
					Amount:   348,
					Date:     "2004-04-04",
					Pct:      20,
					FileURL:  created.FileURL,
					FileName: "image.png",
					Status:   bill.StatusPending,
				},
				Selector: created.Key,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.ID).To(Equal(created.Key))

			bills, err := resource.List(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(bills).To(HaveLen(1))
			Expect(bills[0].Name).To(Equal("Vol Paris Londres"))
		})

		It("creates a fresh record when no selector is given", func() {
			updated, err := resource.Update(context.Background(), bill.UpdatePayload{
				Data: &bill.Bill{Email: "employee@test.tld", Date: "2002-02-02", Status: bill.StatusPending},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.ID).NotTo(BeEmpty())
		})
	})

	Describe("List", func() {
		It("orders records by stored date", func() {
			for _, date := range []string{"2004-01-01", "2001-01-01", "2002-01-01"} {
				_, err := resource.Update(context.Background(), bill.UpdatePayload{
					Data: &bill.Bill{Date: date, Status: bill.StatusPending},
				})
				Expect(err).NotTo(HaveOccurred())
			}

			bills, err := resource.List(context.Background())
			Expect(err).NotTo(HaveOccurred())

			dates := make([]string, len(bills))
			for i, b := range bills {
				dates[i] = b.Date
			}
			Expect(dates).To(Equal([]string{"2001-01-01", "2002-01-01", "2004-01-01"}))
		})
	})
})

var _ = Describe("LocalStorage", func() {
	var storage *LocalStorage

	BeforeEach(func() {
		var err error
		storage, err = NewLocalStorage(GinkgoT().TempDir())
		Expect(err).NotTo(HaveOccurred())
	})

	It("round-trips a file", func() {
		saved, err := storage.Save("test.jpg", []byte("test file content"))
		Expect(err).NotTo(HaveOccurred())
		Expect(saved).To(Equal("test.jpg"))

		data, err := storage.Get("test.jpg")
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("test file content"))
	})

	It("deletes a file", func() {
		_, err := storage.Save("test.jpg", []byte("data"))
		Expect(err).NotTo(HaveOccurred())
		Expect(storage.Delete("test.jpg")).To(Succeed())

		_, err = storage.Get("test.jpg")
		Expect(err).To(HaveOccurred())
	})

	It("errors when getting a missing file", func() {
		_, err := storage.Get("nonexistent.jpg")
		Expect(err).To(MatchError(ContainSubstring("reading file")))
	})
})
