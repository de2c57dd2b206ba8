package models

type FeedbackScore struct {
	CriterionID   string `json:"criterionId"`
	Score         int    `json:"score"`
	Justification string `json:"justification"`
}

type TextAnalysis struct {
	Feedback string `json:"feedback"`
}

type ImageAnalysis struct {
	RelevanceAndSupport string `json:"relevanceAndSupport"`
	ContextualFeedback  string `json:"contextualFeedback"`
}

type AudioAnalysis struct {
	ContentAccuracy          string `json:"contentAccuracy"`
	DeliveryAndPronunciation string `json:"deliveryAndPronunciation"`
}

// Feedback is the structured grading result. Immutable once attached
// to a submission.
type Feedback struct {
	Strengths      []string        `json:"strengths"`
	Suggestions    []string        `json:"suggestions"`
	Scores         []FeedbackScore `json:"scores"`
	OverallComment string          `json:"overallComment"`
	TextAnalysis   TextAnalysis    `json:"textAnalysis"`
	ImageAnalysis  ImageAnalysis   `json:"imageAnalysis"`
	AudioAnalysis  AudioAnalysis   `json:"audioAnalysis"`
}

// Total sums the per-criterion scores.
func (f *Feedback) Total() int {
	total := 0
	for _, s := range f.Scores {
		total += s.Score
	}
	return total
}

func (f *Feedback) Clone() Feedback {
	dup := *f
	dup.Strengths = append([]string(nil), f.Strengths...)
	dup.Suggestions = append([]string(nil), f.Suggestions...)
	dup.Scores = append([]FeedbackScore(nil), f.Scores...)
	return dup
}
