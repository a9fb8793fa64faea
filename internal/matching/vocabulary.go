package matching

// skillVocabulary is the fixed list the deterministic fallback scans against.
// Labels keep their canonical casing; matching is case-insensitive.
var skillVocabulary = []string{
	// Programming languages
	"JavaScript", "TypeScript", "Python", "Java", "C++", "C", "C#", "Go",
	"Rust", "PHP", "Ruby", "Swift", "Kotlin", "Scala", "Perl",

	// Web frontend
	"HTML", "CSS", "Sass", "Less", "React", "Redux", "Next.js", "Vue.js",
	"Nuxt.js", "Angular", "Svelte", "Bootstrap", "Tailwind CSS",

	// Web backend
	"Node.js", "Express.js", "Django", "Flask", "FastAPI", "Spring Boot",
	"Laravel", "Ruby on Rails", "ASP.NET", "Hapi.js",

	// Mobile
	"React Native", "Flutter", "Ionic", "SwiftUI", "Android SDK",
	"Xamarin", "NativeScript",

	// Databases
	"SQL", "PostgreSQL", "MySQL", "MariaDB", "SQLite", "MongoDB",
	"Cassandra", "Redis", "Neo4j", "DynamoDB", "Firebase", "Firestore",

	// APIs and protocols
	"REST API", "GraphQL", "gRPC", "SOAP", "WebSockets", "OAuth 2.0",
	"OpenID Connect",

	// Cloud and DevOps
	"AWS", "Azure", "Google Cloud", "Docker", "Kubernetes", "Terraform",
	"Ansible", "Jenkins", "GitHub Actions", "CircleCI", "Travis CI",
	"Vercel", "Netlify",

	// Version control
	"Git", "GitHub", "GitLab", "Bitbucket", "SVN",

	// Data science and ML
	"NumPy", "Pandas", "Matplotlib", "Seaborn", "Scikit-learn",
	"TensorFlow", "PyTorch", "Keras", "OpenCV", "NLTK", "Spacy",
	"Hugging Face Transformers", "LangChain",

	// Big data
	"Apache Spark", "Hadoop", "Kafka", "Hive", "Snowflake", "Airflow", "dbt",

	// Security
	"Penetration Testing", "Ethical Hacking", "Metasploit", "Wireshark",
	"Nmap", "Burp Suite", "SIEM Tools", "Network Security",

	// Testing
	"Jest", "Mocha", "Chai", "Cypress", "Selenium", "Playwright",
	"JUnit", "PyTest",

	// Design
	"Figma", "Adobe XD", "Adobe Photoshop", "Adobe Illustrator", "Sketch",
	"InVision", "Canva", "Prototyping", "Wireframing",

	// Soft skills
	"Agile", "Scrum", "Kanban", "Project Management", "Problem Solving",
	"Communication", "Collaboration", "Time Management", "Critical Thinking",

	// Miscellaneous
	"Blockchain", "Solidity", "Web3.js", "Ethers.js", "Smart Contracts",
	"IoT Development", "Embedded Systems",
}
