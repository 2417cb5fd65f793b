package catalog

import (
	"fmt"
	"log"

	"github.com/spf13/viper"

	"github.com/yourusername/loveapp-api/internal/domain/entity"
)

// TestDefinition — запись каталога: описание теста и его вопросы.
// Каталог статичен, экземпляры тестов создаются из него по запросу пары.
type TestDefinition struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    string            `json:"category"` // "love", "compatibility", "future"
	Questions   []entity.Question `json:"questions"`
}

// Catalog — неизменяемый каталог тестов, загружаемый один раз при старте
type Catalog struct {
	tests   []TestDefinition
	byTitle map[string]int
}

// Промежуточные структуры для разбора YAML:
// значение варианта ответа в файле может быть числом или строкой.
type rawOption struct {
	Value interface{} `mapstructure:"value"`
	Text  string      `mapstructure:"text"`
}

type rawQuestion struct {
	ID      uint        `mapstructure:"id"`
	Text    string      `mapstructure:"text"`
	Options []rawOption `mapstructure:"options"`
}

type rawTest struct {
	Title       string        `mapstructure:"title"`
	Description string        `mapstructure:"description"`
	Category    string        `mapstructure:"category"`
	Questions   []rawQuestion `mapstructure:"questions"`
}

type rawCatalog struct {
	Tests []rawTest `mapstructure:"tests"`
}

// Load читает каталог тестов из YAML-файла
func Load(path string) (*Catalog, error) {
	vip := viper.New()
	vip.SetConfigFile(path)

	if err := vip.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read test catalog '%s': %w", path, err)
	}

	var raw rawCatalog
	if err := vip.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal test catalog: %w", err)
	}
	if len(raw.Tests) == 0 {
		return nil, fmt.Errorf("test catalog '%s' contains no tests", path)
	}

	cat := &Catalog{byTitle: make(map[string]int, len(raw.Tests))}
	for _, rt := range raw.Tests {
		if rt.Title == "" {
			return nil, fmt.Errorf("test catalog entry without title")
		}
		if _, exists := cat.byTitle[rt.Title]; exists {
			return nil, fmt.Errorf("duplicate test title in catalog: %q", rt.Title)
		}

		def := TestDefinition{
			Title:       rt.Title,
			Description: rt.Description,
			Category:    rt.Category,
		}
		for _, rq := range rt.Questions {
			question := entity.Question{ID: rq.ID, Text: rq.Text}
			for _, ro := range rq.Options {
				value, err := convertOptionValue(ro.Value)
				if err != nil {
					return nil, fmt.Errorf("test %q, question %d: %w", rt.Title, rq.ID, err)
				}
				question.Options = append(question.Options, entity.QuestionOption{Value: value, Text: ro.Text})
			}
			def.Questions = append(def.Questions, question)
		}

		cat.byTitle[def.Title] = len(cat.tests)
		cat.tests = append(cat.tests, def)
	}

	log.Printf("[Catalog] Загружено тестов: %d (файл %s)", len(cat.tests), path)
	return cat, nil
}

// convertOptionValue приводит значение из YAML к варианту AnswerValue
func convertOptionValue(v interface{}) (entity.AnswerValue, error) {
	switch value := v.(type) {
	case int:
		return entity.NumericValue(int64(value)), nil
	case int64:
		return entity.NumericValue(value), nil
	case uint64:
		return entity.NumericValue(int64(value)), nil
	case string:
		return entity.LabelValue(value), nil
	default:
		return entity.AnswerValue{}, fmt.Errorf("option value must be an integer or a string, got %T", v)
	}
}

// All возвращает копию списка тестов каталога
func (c *Catalog) All() []TestDefinition {
	out := make([]TestDefinition, len(c.tests))
	copy(out, c.tests)
	return out
}

// FindByTitle ищет тест по точному совпадению названия
func (c *Catalog) FindByTitle(title string) (TestDefinition, bool) {
	idx, ok := c.byTitle[title]
	if !ok {
		return TestDefinition{}, false
	}
	return c.tests[idx], true
}

// Len возвращает число тестов в каталоге
func (c *Catalog) Len() int {
	return len(c.tests)
}
