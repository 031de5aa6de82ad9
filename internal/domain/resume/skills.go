package resume

// knownSkills is the flat dictionary the extractor scans a résumé against.
// Matching is substring-based on the lowercased text, so multi-word entries
// work as written.
var knownSkills = []string{
	"Go", "Golang", "Python", "Java", "JavaScript", "TypeScript", "C++", "C#",
	"Ruby", "Rust", "Kotlin", "Swift", "PHP", "Scala", "SQL",
	"PostgreSQL", "MySQL", "MongoDB", "Redis", "Elasticsearch", "Kafka",
	"RabbitMQ", "SQLite", "Oracle", "DynamoDB", "Cassandra",
	"Docker", "Kubernetes", "Terraform", "Ansible", "Jenkins", "Git",
	"AWS", "GCP", "Azure", "Linux", "Nginx", "GraphQL", "gRPC", "REST",
	"React", "Vue", "Angular", "Node.js", "Django", "Flask", "Spring",
	"Rails", "Laravel", "Express", "Fiber",
	"Machine Learning", "Deep Learning", "NLP", "Data Analysis",
	"Pandas", "NumPy", "TensorFlow", "PyTorch",
	"Agile", "Scrum", "CI/CD", "TDD", "Microservices",
	"Project Management", "Communication", "Leadership", "Recruiting",
	"Excel", "Tableau", "Power BI",
}

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "from": true, "are": true, "was": true, "were": true,
	"have": true, "has": true, "had": true, "will": true, "would": true,
	"can": true, "could": true, "should": true, "our": true, "your": true,
	"their": true, "his": true, "her": true, "its": true, "into": true,
	"about": true, "over": true, "under": true, "between": true, "also": true,
	"been": true, "being": true, "but": true, "not": true, "all": true,
	"any": true, "each": true, "more": true, "most": true, "other": true,
	"some": true, "such": true, "than": true, "then": true, "them": true,
	"they": true, "you": true, "who": true, "what": true, "when": true,
	"where": true, "which": true, "while": true, "work": true, "working": true,
	"experience": true, "years": true, "using": true, "used": true,
	"ability": true, "strong": true, "skills": true, "including": true,
	"etc": true, "per": true, "via": true, "within": true,
}
