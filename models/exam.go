package models

// SubExam is a specific exam variant nested under a main exam.
type SubExam struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// MainExam is a top-level exam category in the reference catalog.
type MainExam struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Code     string    `json:"code"`
	SubExams []SubExam `json:"sub_exams"`
}

// ExamCatalog is the static reference catalog loaded at process start.
// It is never mutated at runtime.
type ExamCatalog struct {
	Exams []MainExam `json:"exams"`
}

// StoredExam is a catalog entry managed through the exams collection,
// keyed by document id rather than the static catalog's numeric id.
type StoredExam struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Code     string    `json:"code"`
	SubExams []SubExam `json:"sub_exams"`
}

// FindMainExam returns the main exam with the given id, or nil.
func (c *ExamCatalog) FindMainExam(id int) *MainExam {
	if c == nil {
		return nil
	}
	for i := range c.Exams {
		if c.Exams[i].ID == id {
			return &c.Exams[i]
		}
	}
	return nil
}

// FindSubExam returns the sub-exam with the given id, or nil.
func (m *MainExam) FindSubExam(id int) *SubExam {
	if m == nil {
		return nil
	}
	for i := range m.SubExams {
		if m.SubExams[i].ID == id {
			return &m.SubExams[i]
		}
	}
	return nil
}
