package service_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"designmentor.app/analysis-engine/internal/model"
	"designmentor.app/analysis-engine/internal/rules"
	"designmentor.app/analysis-engine/internal/service"
	"designmentor.app/analysis-engine/internal/store"
)

var _ = Describe("suggestion lifecycle", func() {
	var (
		ctx context.Context
		mem *store.Memory
		svc service.AnalysisService
	)

	BeforeEach(func() {
		ctx = context.Background()
		mem = store.NewMemory()
		svc = service.NewAnalysisService(mem.Projects(), mem.Suggestions(), mem.Versions(), rules.Default(), &mockEnricher{})
	})

	Describe("auto-resolution during analysis", func() {
		It("addresses an open suggestion whose keywords now appear, any case", func() {
			mem.PutProject(&model.Project{ID: projectID, DesignContent: "We added Redis for sessions."})
			sug := &model.Suggestion{
				ID:              1,
				ProjectID:       projectID,
				Title:           "Consider Adding Caching Layer",
				Status:          model.SuggestionStatusOpen,
				TriggerKeywords: []string{"cache", "redis"},
			}
			Expect(mem.Suggestions().Create(ctx, sug)).To(Succeed())

			result, err := svc.RunAnalysis(ctx, projectID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.NewlyAddressedCount).To(Equal(1))

			got, err := mem.Suggestions().GetByID(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(Equal(model.SuggestionStatusAddressed))
			Expect(got.AddressedAt).NotTo(BeNil())
			Expect(*got.AddressedInVersion).To(Equal(result.DesignVersion))
		})

		It("leaves an already addressed suggestion untouched", func() {
			mem.PutProject(&model.Project{ID: projectID, DesignContent: "We added Redis for sessions."})
			then := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
			v := 5
			sug := &model.Suggestion{
				ID:                 1,
				ProjectID:          projectID,
				Title:              "Consider Adding Caching Layer",
				Status:             model.SuggestionStatusAddressed,
				TriggerKeywords:    []string{"cache", "redis"},
				AddressedAt:        &then,
				AddressedInVersion: &v,
			}
			Expect(mem.Suggestions().Create(ctx, sug)).To(Succeed())

			result, err := svc.RunAnalysis(ctx, projectID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.NewlyAddressedCount).To(Equal(0))

			got, err := mem.Suggestions().GetByID(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.AddressedAt.Equal(then)).To(BeTrue())
			Expect(*got.AddressedInVersion).To(Equal(5))
		})

		It("falls back to the rule's keywords when none were stored", func() {
			mem.PutProject(&model.Project{ID: projectID, DesignContent: "We added Redis for sessions."})
			sug := &model.Suggestion{
				ID:        1,
				ProjectID: projectID,
				Title:     "Consider Adding Caching Layer",
				Status:    model.SuggestionStatusOpen,
			}
			Expect(mem.Suggestions().Create(ctx, sug)).To(Succeed())

			_, err := svc.RunAnalysis(ctx, projectID)
			Expect(err).NotTo(HaveOccurred())

			got, err := mem.Suggestions().GetByID(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(Equal(model.SuggestionStatusAddressed))
		})

		It("never resolves a suggestion with no keywords and an unknown title", func() {
			mem.PutProject(&model.Project{ID: projectID, DesignContent: "We added Redis for sessions."})
			sug := &model.Suggestion{
				ID:        1,
				ProjectID: projectID,
				Title:     "Hand-written advice from a mentor",
				Status:    model.SuggestionStatusOpen,
			}
			Expect(mem.Suggestions().Create(ctx, sug)).To(Succeed())

			_, err := svc.RunAnalysis(ctx, projectID)
			Expect(err).NotTo(HaveOccurred())

			got, err := mem.Suggestions().GetByID(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(Equal(model.SuggestionStatusOpen))
		})
	})

	Describe("SetSuggestionStatus", func() {
		var sugID int64

		BeforeEach(func() {
			mem.PutProject(&model.Project{ID: projectID, DesignContent: "REST API"})
			sug := &model.Suggestion{
				ID:        1,
				ProjectID: projectID,
				Title:     "Consider Adding Caching Layer",
				Status:    model.SuggestionStatusOpen,
			}
			Expect(mem.Suggestions().Create(ctx, sug)).To(Succeed())
			sugID = sug.ID
		})

		It("returns ErrSuggestionNotFound for an unknown suggestion", func() {
			_, err := svc.SetSuggestionStatus(ctx, 404, model.SuggestionStatusIgnored, nil)
			Expect(err).To(MatchError(service.ErrSuggestionNotFound))
		})

		It("stamps addressed metadata when marking addressed", func() {
			v := 2
			got, err := svc.SetSuggestionStatus(ctx, sugID, model.SuggestionStatusAddressed, &v)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(Equal(model.SuggestionStatusAddressed))
			Expect(got.AddressedAt).NotTo(BeNil())
			Expect(*got.AddressedInVersion).To(Equal(2))
		})

		It("marks addressed without a version when none is given", func() {
			got, err := svc.SetSuggestionStatus(ctx, sugID, model.SuggestionStatusAddressed, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.AddressedAt).NotTo(BeNil())
			Expect(got.AddressedInVersion).To(BeNil())
		})

		It("clears addressed metadata when reopening", func() {
			v := 2
			_, err := svc.SetSuggestionStatus(ctx, sugID, model.SuggestionStatusAddressed, &v)
			Expect(err).NotTo(HaveOccurred())

			got, err := svc.SetSuggestionStatus(ctx, sugID, model.SuggestionStatusOpen, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(Equal(model.SuggestionStatusOpen))
			Expect(got.AddressedAt).To(BeNil())
			Expect(got.AddressedInVersion).To(BeNil())
		})

		It("only changes the status when ignoring", func() {
			got, err := svc.SetSuggestionStatus(ctx, sugID, model.SuggestionStatusIgnored, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(Equal(model.SuggestionStatusIgnored))
			Expect(got.AddressedAt).To(BeNil())
			Expect(got.AddressedInVersion).To(BeNil())
		})
	})
})
