package bill

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/billed/expense-client/internal/identity"
	"github.com/billed/expense-client/internal/routes"
)

var _ = Describe("SubmissionService", func() {
	var (
		store     *mockStore
		users     *fakeUsers
		navigated []string
		service   *SubmissionService
	)

	BeforeEach(func() {
		store = newMockStore()
		store.bills.createResult = &FileCreation{
			FileURL: "https://store.example/files/abc.png",
			Key:     "1234",
		}
		users = &fakeUsers{user: identity.User{Type: "Employee", Email: "employee@test.tld"}}
		navigated = nil
		service = NewSubmissionService(store, users, func(path string) {
			navigated = append(navigated, path)
		})
	})

	Describe("HandleFileSelected", func() {
		var (
			fileName string
			staged   *StagedUpload
			err      error
		)

		BeforeEach(func() {
			fileName = "image.png"
		})

		JustBeforeEach(func() {
			staged, err = service.HandleFileSelected(context.Background(), fileName, []byte("image bytes"))
		})

		When("the extension is not allowed", func() {
			BeforeEach(func() {
				fileName = "test.pdf"
			})

			It("returns ErrExtensionNotAllowed", func() {
				Expect(err).To(MatchError(ErrExtensionNotAllowed))
			})

			It("does not call the store", func() {
				Expect(store.bills.createCalls).To(BeEmpty())
			})

			It("leaves the staged state unset", func() {
				Expect(staged).To(BeNil())
				Expect(service.Staged()).To(BeNil())
			})
		})

		When("the upload succeeds", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("issues exactly one create call", func() {
				Expect(store.bills.createCalls).To(HaveLen(1))
			})

			It("sends the file and the current user's email", func() {
				Expect(store.bills.createCalls[0].Email).To(Equal("employee@test.tld"))
				Expect(store.bills.createCalls[0].FileName).To(Equal("image.png"))
				Expect(store.bills.createCalls[0].File).To(Equal([]byte("image bytes")))
			})

			It("stages the upload from the store response", func() {
				Expect(staged.FileURL).To(Equal("https://store.example/files/abc.png"))
				Expect(staged.BillID).To(Equal("1234"))
				Expect(staged.FileName).To(Equal("image.png"))
				Expect(service.Staged()).To(Equal(staged))
			})
		})

		When("the upload fails", func() {
			var setupErr error

			BeforeEach(func() {
				setupErr = errors.New("Erreur 500")
				store.bills.createErr = setupErr
			})

			It("returns the error", func() {
				Expect(err).To(MatchError(setupErr))
			})

			It("leaves the staged state unset", func() {
				Expect(service.Staged()).To(BeNil())
			})
		})

		When("a second file is selected", func() {
			It("overwrites the staged upload", func() {
				store.bills.createResult = &FileCreation{FileURL: "https://store.example/files/def.jpg", Key: "5678"}
				again, selectErr := service.HandleFileSelected(context.Background(), "other.jpg", []byte("more bytes"))
				Expect(selectErr).NotTo(HaveOccurred())
				Expect(service.Staged()).To(Equal(again))
				Expect(service.Staged().BillID).To(Equal("5678"))
			})
		})

		When("the identity record is missing", func() {
			BeforeEach(func() {
				users.err = errors.New("no user connected")
			})

			It("returns the error without uploading", func() {
				Expect(err).To(HaveOccurred())
				Expect(store.bills.createCalls).To(BeEmpty())
			})
		})
	})

	Describe("Submit", func() {
		var (
			form BillForm
			err  error
		)

		BeforeEach(func() {
			form = BillForm{
				Type:       "Transports",
				Name:       "Vol Paris Londres",
				Amount:     "348",
				Date:       "2004-04-04",
				Vat:        "70",
				Pct:        "20",
				Commentary: "séminaire",
			}
		})

		JustBeforeEach(func() {
			err = service.Submit(context.Background(), form)
		})

		When("no store is configured", func() {
			BeforeEach(func() {
				service = NewSubmissionService(nil, users, func(path string) {
					navigated = append(navigated, path)
				})
			})

			It("completes without error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("navigates to the bills list exactly once", func() {
				Expect(navigated).To(Equal([]string{routes.Bills}))
			})
		})

		When("a file was staged beforehand", func() {
			BeforeEach(func() {
				_, selectErr := service.HandleFileSelected(context.Background(), "image.png", []byte("image bytes"))
				Expect(selectErr).NotTo(HaveOccurred())
			})

			It("issues exactly one update call", func() {
				Expect(store.bills.updateCalls).To(HaveLen(1))
			})

			It("uses the staged identifier as selector", func() {
				Expect(store.bills.updateCalls[0].Selector).To(Equal("1234"))
			})

			It("builds the record from the form fields", func() {
				sent := store.bills.updateCalls[0].Data
				Expect(sent.Email).To(Equal("employee@test.tld"))
				Expect(sent.Type).To(Equal("Transports"))
				Expect(sent.Name).To(Equal("Vol Paris Londres"))
				Expect(sent.Amount).To(Equal(348))
				Expect(sent.Date).To(Equal("2004-04-04"))
				Expect(sent.Vat).To(Equal("70"))
				Expect(sent.Pct).To(Equal(20))
				Expect(sent.Commentary).To(Equal("séminaire"))
			})

			It("links the staged attachment", func() {
				sent := store.bills.updateCalls[0].Data
				Expect(sent.FileURL).To(Equal("https://store.example/files/abc.png"))
				Expect(sent.FileName).To(Equal("image.png"))
			})

			It("always creates the bill as pending", func() {
				Expect(store.bills.updateCalls[0].Data.Status).To(Equal(StatusPending))
			})

			It("navigates to the bills list exactly once", func() {
				Expect(navigated).To(Equal([]string{routes.Bills}))
			})
		})

		When("no file was staged", func() {
			It("sends an empty selector and no attachment reference", func() {
				Expect(store.bills.updateCalls).To(HaveLen(1))
				Expect(store.bills.updateCalls[0].Selector).To(BeEmpty())
				Expect(store.bills.updateCalls[0].Data.FileURL).To(BeEmpty())
				Expect(store.bills.updateCalls[0].Data.FileName).To(BeEmpty())
			})
		})

		When("the update fails", func() {
			BeforeEach(func() {
				store.bills.updateErr = errors.New("Erreur 500")
			})

			It("still treats the flow as complete", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("still navigates to the bills list", func() {
				Expect(navigated).To(Equal([]string{routes.Bills}))
			})
		})

		When("the pct field is unparsable", func() {
			BeforeEach(func() {
				form.Pct = "twenty"
			})

			It("defaults pct to 20", func() {
				Expect(store.bills.updateCalls[0].Data.Pct).To(Equal(20))
			})
		})

		When("the pct field is empty", func() {
			BeforeEach(func() {
				form.Pct = ""
			})

			It("defaults pct to 20", func() {
				Expect(store.bills.updateCalls[0].Data.Pct).To(Equal(20))
			})
		})

		When("the amount does not parse", func() {
			BeforeEach(func() {
				form.Amount = "a lot"
			})

			It("rejects the submission", func() {
				Expect(err).To(MatchError(ErrInvalidAmount))
			})

			It("does not persist anything", func() {
				Expect(store.bills.updateCalls).To(BeEmpty())
			})

			It("does not navigate", func() {
				Expect(navigated).To(BeEmpty())
			})
		})

		When("the identity record is missing", func() {
			BeforeEach(func() {
				users.err = errors.New("no user connected")
			})

			It("returns the error without persisting", func() {
				Expect(err).To(HaveOccurred())
				Expect(store.bills.updateCalls).To(BeEmpty())
			})
		})
	})
})
