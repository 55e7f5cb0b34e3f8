package faker

// Word lists for generated values. Kept small and ASCII-only so generated
// values are safe to use in URLs, headers and validation messages.

var loremWords = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing", "elit",
	"sed", "do", "eiusmod", "tempor", "incididunt", "ut", "labore", "et", "dolore",
	"magna", "aliqua", "enim", "ad", "minim", "veniam", "quis", "nostrud",
	"exercitation", "ullamco", "laboris", "nisi", "aliquip", "ex", "ea", "commodo",
	"consequat", "duis", "aute", "irure", "in", "reprehenderit", "voluptate",
	"velit", "esse", "cillum", "fugiat", "nulla", "pariatur", "excepteur", "sint",
	"occaecat", "cupidatat", "non", "proident", "sunt", "culpa", "qui", "officia",
	"deserunt", "mollit", "anim", "id", "est", "laborum",
}

var firstNames = []string{
	"John", "Jane", "Bob", "Alice", "Charlie", "Diana", "Edward", "Fiona",
	"George", "Hannah", "Ian", "Julia", "Kevin", "Laura", "Michael", "Nina",
	"Oscar", "Paula", "Quentin", "Rachel", "Samuel", "Tara", "Victor", "Wendy",
}

var lastNames = []string{
	"Smith", "Doe", "Johnson", "Williams", "Brown", "Davis", "Miller", "Wilson",
	"Moore", "Taylor", "Anderson", "Thomas", "Jackson", "White", "Harris", "Martin",
	"Thompson", "Garcia", "Martinez", "Robinson", "Clark", "Lewis", "Lee", "Walker",
}

var emailDomains = []string{"example.com", "example.org", "example.net", "test.com"}

var companies = []string{
	"Acme Corp", "Globex Inc", "Initech", "Umbrella Corp", "Stark Industries",
	"Wayne Enterprises", "Cyberdyne Systems", "Tyrell Corp",
}
