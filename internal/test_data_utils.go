package internal

// TestDocumentText is a small resume-style document used across package tests.
const TestDocumentText = `John Smith
Senior Engineer
Call me at 123-456-7890
Address: 123 Main St, 4th Floor
Austin, TX 78701, USA
Role: Engineer`

// TestDocumentSegments is TestDocumentText after segmentation.
var TestDocumentSegments = []string{
	"John Smith",
	"Senior Engineer",
	"Call me at 123-456-7890",
	"Address: 123 Main St, 4th Floor",
	"Austin, TX 78701, USA",
	"Role: Engineer",
}

// TestNERResponse is what the inference API answers for the first segment of
// TestDocumentText, aggregated by entity group.
const TestNERResponse = `[
  {"entity_group": "PER", "score": 0.9981, "word": "john", "start": 0, "end": 4},
  {"entity_group": "PER", "score": 0.9975, "word": "smith", "start": 5, "end": 10}
]`

// TestColdStartResponse is the body the inference API returns while the model loads.
const TestColdStartResponse = `{"error":"Model dbmdz/electra-large-discriminator-finetuned-conll03-english is currently loading","estimated_time":12.0}`
