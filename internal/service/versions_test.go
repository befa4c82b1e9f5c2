package service_test

import (
	"context"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"designmentor.app/analysis-engine/internal/model"
	"designmentor.app/analysis-engine/internal/rules"
	"designmentor.app/analysis-engine/internal/service"
	"designmentor.app/analysis-engine/internal/store"
)

var _ = Describe("ProjectEvolution", func() {
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

	It("returns ErrProjectNotFound for an unknown project", func() {
		_, err := svc.ProjectEvolution(ctx, 404)
		Expect(err).To(MatchError(service.ErrProjectNotFound))
	})

	It("reports an empty history before the first analysis", func() {
		mem.PutProject(&model.Project{ID: projectID, DesignContent: "REST API"})

		ev, err := svc.ProjectEvolution(ctx, projectID)
		Expect(err).NotTo(HaveOccurred())
		Expect(ev.Versions).To(BeEmpty())
		Expect(ev.CurrentVersion).To(Equal(0))
		Expect(ev.ProgressSummary).To(Equal("No analysis history yet. Run your first analysis!"))
	})

	It("summarizes a single analyzed version", func() {
		mem.PutProject(&model.Project{ID: projectID, DesignContent: "REST API"})
		result, err := svc.RunAnalysis(ctx, projectID)
		Expect(err).NotTo(HaveOccurred())

		ev, err := svc.ProjectEvolution(ctx, projectID)
		Expect(err).NotTo(HaveOccurred())
		Expect(ev.Versions).To(HaveLen(1))
		Expect(ev.CurrentVersion).To(Equal(1))
		Expect(ev.CurrentMaturityScore).To(Equal(1))
		Expect(ev.ProgressSummary).To(Equal(
			fmt.Sprintf("Version 1: %d suggestions, maturity 1/5", result.NewSuggestionsCount)))
	})

	It("summarizes progress across versions", func() {
		mem.PutProject(&model.Project{ID: projectID, DesignContent: "REST API"})
		_, err := svc.RunAnalysis(ctx, projectID)
		Expect(err).NotTo(HaveOccurred())

		mem.PutProject(&model.Project{ID: projectID, DesignContent: "REST API, PostgreSQL, Redis cache, Kubernetes horizontal scaling, JWT auth"})
		_, err = svc.RunAnalysis(ctx, projectID)
		Expect(err).NotTo(HaveOccurred())

		ev, err := svc.ProjectEvolution(ctx, projectID)
		Expect(err).NotTo(HaveOccurred())
		Expect(ev.Versions).To(HaveLen(2))
		Expect(ev.CurrentVersion).To(Equal(2))
		Expect(ev.CurrentMaturityScore).To(Equal(5))
		Expect(ev.ProgressSummary).To(Equal("Great progress! Addressed 4 suggestions and Improved maturity by 4 points over 2 versions."))
	})

	It("falls back to a version count when nothing improved", func() {
		mem.PutProject(&model.Project{ID: projectID, DesignContent: "REST API"})
		_, err := svc.RunAnalysis(ctx, projectID)
		Expect(err).NotTo(HaveOccurred())

		mem.PutProject(&model.Project{ID: projectID, DesignContent: "REST API endpoint"})
		_, err = svc.RunAnalysis(ctx, projectID)
		Expect(err).NotTo(HaveOccurred())

		ev, err := svc.ProjectEvolution(ctx, projectID)
		Expect(err).NotTo(HaveOccurred())
		Expect(ev.Versions).To(HaveLen(2))
		Expect(ev.ProgressSummary).To(Equal("Tracked 2 versions. Keep improving your design!"))
	})
})
