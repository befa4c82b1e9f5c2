package rules_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"designmentor.app/analysis-engine/internal/model"
	"designmentor.app/analysis-engine/internal/rules"
)

func titles(findings []rules.Finding) []string {
	out := make([]string, len(findings))
	for i, f := range findings {
		out[i] = f.Title
	}
	return out
}

var _ = Describe("Analyze", func() {
	var rs *rules.Ruleset

	BeforeEach(func() {
		rs = rules.Default()
	})

	It("fires every fixed rule for empty content", func() {
		findings := rs.Analyze("")
		Expect(findings).To(HaveLen(len(rs.Rules())))
	})

	It("triggers on exact keywords, not broader concepts", func() {
		findings := rs.Analyze("We use a REST API and PostgreSQL.")

		got := titles(findings)
		Expect(got).To(ContainElement("Consider Adding Caching Layer"))
		Expect(got).To(ContainElement("Add Horizontal Scaling Strategy"))
		Expect(got).To(ContainElement("Define Authentication & Authorization"))

		// Mentioning the database does not satisfy the indexing rule; only
		// its own keywords do.
		Expect(got).To(ContainElement("Define Database Indexing Strategy"))
	})

	It("suppresses only the rule whose keywords are present", func() {
		findings := rs.Analyze("We cache hot data in Redis.")

		got := titles(findings)
		Expect(got).NotTo(ContainElement("Consider Adding Caching Layer"))
		Expect(got).To(ContainElement("Add Horizontal Scaling Strategy"))
	})

	It("keeps fixed rules in definition order, conditionals after", func() {
		findings := rs.Analyze("A chat application.")

		got := titles(findings)
		Expect(got[0]).To(Equal("Consider Adding Caching Layer"))
		Expect(got[len(got)-1]).To(Equal("Add Real-time Messaging (Chat Context)"))
	})

	It("co-fires the generic realtime rule and the chat conditional", func() {
		findings := rs.Analyze("Users exchange chat messages via the service.")

		got := titles(findings)
		Expect(got).To(ContainElement("Implement Real-time Communication"))
		Expect(got).To(ContainElement("Add Real-time Messaging (Chat Context)"))
	})

	It("does not fire the chat conditional when realtime is covered", func() {
		findings := rs.Analyze("Chat messages are delivered over WebSocket connections.")

		got := titles(findings)
		Expect(got).NotTo(ContainElement("Add Real-time Messaging (Chat Context)"))
		Expect(got).NotTo(ContainElement("Implement Real-time Communication"))
	})

	It("fires the media conditional when uploads lack a storage strategy", func() {
		findings := rs.Analyze("Users upload profile images.")

		var media *rules.Finding
		for i := range findings {
			if findings[i].Title == "Implement Media Strategy (S3/CDN)" {
				media = &findings[i]
			}
		}
		Expect(media).NotTo(BeNil())
		Expect(media.Category).To(Equal(model.CategoryDatabase))
		Expect(media.Severity).To(Equal(model.SeverityWarning))
	})

	It("does not fire the media conditional when S3 is mentioned", func() {
		findings := rs.Analyze("Users upload images to S3.")

		got := titles(findings)
		Expect(got).NotTo(ContainElement("Implement Media Strategy (S3/CDN)"))
		Expect(got).NotTo(ContainElement("Define Media Storage Strategy"))
	})

	It("carries the rule's keyword list on each finding", func() {
		findings := rs.Analyze("")

		for _, f := range findings {
			Expect(f.TriggerKeywords).NotTo(BeEmpty(), f.Title)
		}
	})
})
