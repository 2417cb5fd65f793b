package entity

import (
	"encoding/json"
	"fmt"
)

// AnswerValue — значение ответа на вопрос теста.
// Значение либо числовое (шкала), либо текстовая метка ("words", "time" и т.д.).
// Вариант фиксируется при разборе JSON, поэтому правило подсчета очков
// ("число — прибавляем значение, метка — прибавляем 1") исчерпывающее.
type AnswerValue struct {
	Num     int64
	Label   string
	Numeric bool
}

// NumericValue создает числовое значение ответа
func NumericValue(n int64) AnswerValue {
	return AnswerValue{Num: n, Numeric: true}
}

// LabelValue создает текстовое значение ответа
func LabelValue(label string) AnswerValue {
	return AnswerValue{Label: label}
}

// Points возвращает вклад значения в итоговый счет:
// числовое значение прибавляет само себя, метка — ровно единицу.
func (v AnswerValue) Points() int {
	if v.Numeric {
		return int(v.Num)
	}
	return 1
}

// UnmarshalJSON разбирает значение ответа: целое число или строка.
// Дробные числа и прочие типы JSON считаются невалидными.
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		n, err := num.Int64()
		if err != nil {
			return fmt.Errorf("answer value must be an integer or a string, got %q", num.String())
		}
		*v = NumericValue(n)
		return nil
	}

	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return fmt.Errorf("answer value must be an integer or a string")
	}
	*v = LabelValue(label)
	return nil
}

// MarshalJSON сериализует значение в исходную форму
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.Numeric {
		return json.Marshal(v.Num)
	}
	return json.Marshal(v.Label)
}

// Answer представляет один ответ пользователя на вопрос теста
type Answer struct {
	QuestionID  uint        `json:"question_id"`
	AnswerValue AnswerValue `json:"answer_value"`
}

// QuestionOption — вариант ответа на вопрос
type QuestionOption struct {
	Value AnswerValue `json:"value"`
	Text  string      `json:"text"`
}

// Question — вопрос теста с вариантами ответов
type Question struct {
	ID      uint             `json:"id"`
	Text    string           `json:"text"`
	Options []QuestionOption `json:"options"`
}
