package practice

// Subjects offered for practice tests.
var Subjects = []string{"Physics", "Chemistry", "Mathematics", "Biology"}

// MaxTestQuestions caps how many questions a generated test draws.
const MaxTestQuestions = 60

type Question struct {
	ID            int64  `json:"id"`
	Subject       string `json:"subject" validate:"required,oneof=Physics Chemistry Mathematics Biology"`
	Text          string `json:"question_text" validate:"required"`
	OptionA       string `json:"option_a" validate:"required"`
	OptionB       string `json:"option_b" validate:"required"`
	OptionC       string `json:"option_c" validate:"required"`
	OptionD       string `json:"option_d" validate:"required"`
	CorrectAnswer string `json:"correct_answer,omitempty" validate:"required,oneof=A B C D"`
}

type Test struct {
	ID            int64  `json:"id"`
	Subject       string `json:"subject" validate:"required,oneof=Physics Chemistry Mathematics Biology"`
	Name          string `json:"test_name"`
	CreatedAt     int64  `json:"created_at"`
	QuestionCount int    `json:"question_count"`
}

// Session is a test ready to be taken: shuffled, with answer keys removed.
type Session struct {
	Test      Test       `json:"test"`
	Questions []Question `json:"questions"`
}

type Result struct {
	TestID int64 `json:"test_id"`
	Score  int   `json:"score"`
	Total  int   `json:"total"`
}
