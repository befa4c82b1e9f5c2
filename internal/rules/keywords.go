package rules

// Master keyword buckets. Each bucket names one architectural concern; rules
// and maturity concept groups are assembled from these so a keyword is defined
// in exactly one place.
var (
	apiKeywords      = []string{"api", "rest", "http", "endpoint", "graphql", "grpc", "request", "response", "gateway", "controller"}
	authKeywords     = []string{"auth", "authentication", "authorization", "jwt", "oauth", "login", "signup", "session", "cookie", "token", "rbac"}
	dbKeywords       = []string{"database", "postgres", "mysql", "nosql", "mongodb", "dynamodb", "cassandra", "sql", "storage", "persist"}
	cacheKeywords    = []string{"cache", "redis", "memcached", "in-memory", "lru", "ttl", "hot data"}
	scalingKeywords  = []string{"scale", "scaling", "horizontal", "load balancer", "replica", "multiple instances", "autoscale", "hpa"}
	realtimeKeywords = []string{"websocket", "websockets", "socket.io", "realtime", "real time", "long polling", "server sent events", "grpc stream", "pub/sub", "presence", "live updates"}
	queueKeywords    = []string{"queue", "kafka", "rabbitmq", "pubsub", "asynchronous", "async", "worker", "background job", "event driven"}
	indexingKeywords = []string{"index", "indexing", "query optimization", "composite index", "search index"}
	observKeywords   = []string{"logging", "monitoring", "metrics", "tracing", "prometheus", "grafana", "alerts", "observability"}
	reliabKeywords   = []string{"retry", "timeout", "circuit breaker", "fallback", "graceful failure", "idempotent"}
	safetyKeywords   = []string{"rate limit", "throttle", "token bucket", "abuse", "spam prevention"}
	storageKeywords  = []string{"s3", "object storage", "blob storage", "cdn", "file upload", "media storage", "file storage"}
	searchKeywords   = []string{"search", "elasticsearch", "full text search", "filter", "query search"}
	backupKeywords   = []string{"backup", "restore", "replication", "disaster recovery"}
	versionKeywords  = []string{"versioning", "v1", "v2", "backward compatibility"}
	shardingKeywords = []string{"shard", "sharding", "partition", "data partitioning", "consistent hashing"}
	infraKeywords    = []string{"docker", "kubernetes", "cloud", "aws", "gcp", "azure", "container", "vm"}
	validKeywords    = []string{"validation", "sanitize", "sanitization", "input validation", "schema validation", "pydantic", "cors"}
)

// Domain hints used by the conditional rules.
var (
	chatHints  = []string{"chat", "message", "room", "conversation"}
	mediaHints = []string{"video", "image", "upload", "stream"}
)
