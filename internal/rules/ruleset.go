package rules

import (
	"designmentor.app/analysis-engine/internal/model"
)

// Rule is one missing-concept check. Its title is the global identity used for
// suggestion deduplication, so titles must be unique across the ruleset.
type Rule struct {
	Title       string
	Description string
	Category    model.Category
	Severity    model.Severity
	Keywords    []string
}

// ConditionalRule fires only when a domain hint is present in the content but
// the required concept keywords are not. It carries its own title, distinct
// from the generic rule covering the same concept, so both can become
// independent suggestions.
type ConditionalRule struct {
	Hints []string
	Rule  Rule
}

// ConceptGroup is one of the five maturity-score groups.
type ConceptGroup struct {
	Name        string
	Description string
	Keywords    []string
}

// Finding is the in-memory result of one analysis pass: a concept the content
// does not mention yet. It carries the exact keyword list of the rule that
// produced it so later re-analysis can test those keywords directly.
type Finding struct {
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Category        model.Category `json:"category"`
	Severity        model.Severity `json:"severity"`
	TriggerKeywords []string       `json:"trigger_keywords"`
}

// Ruleset is the immutable rule configuration. Build it once with Default and
// pass it by reference into the analyzer and scorer.
type Ruleset struct {
	rules        []Rule
	conditionals []ConditionalRule
	maturity     []ConceptGroup
	byTitle      map[string]Rule
}

// Rules returns the fixed rules in definition order.
func (rs *Ruleset) Rules() []Rule { return rs.rules }

// RuleByTitle looks up a fixed rule by its title. Used as the fallback keyword
// source for suggestions stored before trigger keywords were persisted.
func (rs *Ruleset) RuleByTitle(title string) (Rule, bool) {
	r, ok := rs.byTitle[title]
	return r, ok
}

// Default builds the standard ruleset: sixteen fixed rules, two
// domain-conditional rules, and the five maturity concept groups.
func Default() *Ruleset {
	rs := &Ruleset{
		rules: []Rule{
			{
				Title: "Consider Adding Caching Layer",
				Description: "Your design doesn't mention caching. Consider adding a caching layer " +
					"(Redis, Memcached, or CDN) to improve response times and reduce database load. " +
					"Cache frequently accessed data like user sessions, API responses, or computed results.",
				Category: model.CategoryCaching,
				Severity: model.SeverityWarning,
				Keywords: cacheKeywords,
			},
			{
				Title: "Add Horizontal Scaling Strategy",
				Description: "Your design doesn't mention horizontal scaling. Consider how your system will " +
					"handle increased load. Add load balancers and design services to be stateless " +
					"so they can run as multiple instances. Consider container orchestration (K8s) for auto-scaling.",
				Category: model.CategoryScalability,
				Severity: model.SeverityCritical,
				Keywords: scalingKeywords,
			},
			{
				Title: "Implement Rate Limiting",
				Description: "Your design doesn't mention rate limiting. Protect your APIs from abuse and " +
					"ensure fair usage by implementing rate limiting. Consider using an API gateway " +
					"or middleware to enforce request quotas per user/IP.",
				Category: model.CategorySecurity,
				Severity: model.SeverityWarning,
				Keywords: safetyKeywords,
			},
			{
				Title: "Define Database Indexing Strategy",
				Description: "Your design doesn't mention database indexing. Proper indexes are crucial for " +
					"query performance. Identify frequently queried fields and create appropriate " +
					"indexes. Consider composite indexes for queries with multiple conditions.",
				Category: model.CategoryDatabase,
				Severity: model.SeverityWarning,
				Keywords: indexingKeywords,
			},
			{
				Title: "Define Authentication & Authorization",
				Description: "Your design doesn't clearly mention authentication or authorization. " +
					"Define how users will authenticate (JWT, OAuth, sessions) and how you'll " +
					"handle authorization (RBAC, ABAC). This is critical for security.",
				Category: model.CategorySecurity,
				Severity: model.SeverityCritical,
				Keywords: authKeywords,
			},
			{
				Title: "Add Error Handling Strategy",
				Description: "Your design doesn't mention error handling patterns. Consider implementing " +
					"retry logic with exponential backoff, circuit breakers for external services, " +
					"and graceful degradation when dependencies fail.",
				Category: model.CategoryReliability,
				Severity: model.SeverityWarning,
				Keywords: reliabKeywords,
			},
			{
				Title: "Implement Observability",
				Description: "Your design doesn't mention monitoring or logging. Add structured logging, " +
					"metrics collection (Prometheus), and distributed tracing for debugging. " +
					"Set up alerting for critical failures and performance degradation.",
				Category: model.CategoryReliability,
				Severity: model.SeverityInfo,
				Keywords: observKeywords,
			},
			{
				Title: "Plan for Data Backup & Recovery",
				Description: "Your design doesn't mention backup or disaster recovery. Define your backup " +
					"strategy (frequency, retention), replication for high availability, and " +
					"document recovery procedures. Consider RPO and RTO requirements.",
				Category: model.CategoryReliability,
				Severity: model.SeverityWarning,
				Keywords: backupKeywords,
			},
			{
				Title: "Consider API Versioning Strategy",
				Description: "Your design doesn't mention API versioning. Plan how you'll handle breaking " +
					"changes. Use URL versioning (/api/v1) or header-based versioning. Define " +
					"deprecation policies for old versions.",
				Category: model.CategoryAPIDesign,
				Severity: model.SeverityInfo,
				Keywords: versionKeywords,
			},
			{
				Title: "Consider Database Partitioning",
				Description: "For large-scale systems, consider database sharding or partitioning strategies. " +
					"This helps distribute data across multiple nodes and improves query performance. " +
					"Choose a sharding key carefully based on your access patterns.",
				Category: model.CategoryScalability,
				Severity: model.SeverityInfo,
				Keywords: shardingKeywords,
			},
			{
				Title: "Consider Asynchronous Processing",
				Description: "Your design doesn't mention message queues or async processing. For operations " +
					"that don't need immediate response (emails, notifications, heavy processing), " +
					"consider using message queues (Kafka, RabbitMQ, SQS) to decouple services.",
				Category: model.CategoryPerformance,
				Severity: model.SeverityInfo,
				Keywords: queueKeywords,
			},
			{
				Title: "Add Input Validation",
				Description: "Your design doesn't explicitly mention input validation. Validate all user " +
					"inputs at API boundaries to prevent injection attacks and ensure data integrity. " +
					"Use schema validation libraries and sanitize inputs before processing.",
				Category: model.CategorySecurity,
				Severity: model.SeverityWarning,
				Keywords: validKeywords,
			},
			{
				Title: "Implement Real-time Communication",
				Description: "Your design doesn't mention real-time components. For interactive features " +
					"like chat, notifications, or live updates, consider implementing WebSockets, " +
					"Server-Sent Events (SSE), or a real-time framework like Socket.io.",
				Category: model.CategoryAPIDesign,
				Severity: model.SeverityWarning,
				Keywords: realtimeKeywords,
			},
			{
				Title: "Define Media Storage Strategy",
				Description: "Your design doesn't mention how files or media are stored. For images, videos, " +
					"or documents, use a dedicated blob storage service (like S3, Cloudinary, or GCS) " +
					"rather than storing them directly in your database. Consider a CDN for global delivery.",
				Category: model.CategoryDatabase,
				Severity: model.SeverityInfo,
				Keywords: storageKeywords,
			},
			{
				Title: "Consider Containerization & Cloud Infra",
				Description: "Your design doesn't mention deployment or infrastructure. Consider using " +
					"Docker for containerization and Kubernetes for orchestration. Leverage " +
					"cloud provider services (AWS, GCP, Azure) for managed infrastructure.",
				Category: model.CategoryPerformance,
				Severity: model.SeverityInfo,
				Keywords: infraKeywords,
			},
			{
				Title: "Add Full-Text Search Capability",
				Description: "Your design mentions search but lacks a specialized search engine. " +
					"Consider integrating Elasticsearch or Algolia for fast, full-text search " +
					"capabilities with features like fuzzy matching and highlighting.",
				Category: model.CategoryPerformance,
				Severity: model.SeverityInfo,
				Keywords: searchKeywords,
			},
		},
		conditionals: []ConditionalRule{
			{
				Hints: chatHints,
				Rule: Rule{
					Title: "Add Real-time Messaging (Chat Context)",
					Description: "You mentioned chat/messaging features. Real-time delivery is essential here. " +
						"Consider using WebSockets (Socket.io) to ensure instant message delivery.",
					Category: model.CategoryAPIDesign,
					Severity: model.SeverityCritical,
					Keywords: realtimeKeywords,
				},
			},
			{
				Hints: mediaHints,
				Rule: Rule{
					Title: "Implement Media Strategy (S3/CDN)",
					Description: "Your design handles videos/images. Storing these in a database is inefficient. " +
						"Consider Object Storage (S3) combined with a CDN for fast global delivery.",
					Category: model.CategoryDatabase,
					Severity: model.SeverityWarning,
					Keywords: storageKeywords,
				},
			},
		},
		maturity: []ConceptGroup{
			{Name: "API", Description: "API/Communication layer defined", Keywords: concat(apiKeywords, realtimeKeywords)},
			{Name: "DATABASE", Description: "Storage strategy present", Keywords: concat(dbKeywords, storageKeywords)},
			{Name: "CACHE", Description: "Caching layer considered", Keywords: cacheKeywords},
			{Name: "SCALING", Description: "Scaling strategy defined", Keywords: concat(scalingKeywords, shardingKeywords)},
			{Name: "SAFETY", Description: "Safety & Integrity measures", Keywords: concat(authKeywords, safetyKeywords, reliabKeywords, validKeywords)},
		},
	}

	rs.byTitle = make(map[string]Rule, len(rs.rules))
	for _, r := range rs.rules {
		rs.byTitle[r.Title] = r
	}
	return rs
}

func (r Rule) finding() Finding {
	return Finding{
		Title:           r.Title,
		Description:     r.Description,
		Category:        r.Category,
		Severity:        r.Severity,
		TriggerKeywords: r.Keywords,
	}
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
