package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `
tests:
  - title: "Тест на совместимость"
    description: "Узнайте, насколько вы подходите друг другу"
    category: "compatibility"
    questions:
      - id: 1
        text: "Насколько вы цените время, проведенное вместе?"
        options:
          - { value: 1, text: "Не очень" }
          - { value: 4, text: "Очень" }
  - title: "Тест на любовные языки"
    description: "Определите ваши языки любви"
    category: "love"
    questions:
      - id: 1
        text: "Что для вас важнее в отношениях?"
        options:
          - { value: "words", text: "Слова поддержки" }
          - { value: "touch", text: "Физический контакт" }
`

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tests.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCatalog_Load(t *testing.T) {
	cat, err := Load(writeCatalogFile(t, sampleCatalog))

	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())

	def, ok := cat.FindByTitle("Тест на совместимость")
	require.True(t, ok)
	assert.Equal(t, "compatibility", def.Category)
	require.Len(t, def.Questions, 1)
	require.Len(t, def.Questions[0].Options, 2)
	assert.True(t, def.Questions[0].Options[0].Value.Numeric, "Числовой вариант должен остаться числовым")

	love, ok := cat.FindByTitle("Тест на любовные языки")
	require.True(t, ok)
	assert.False(t, love.Questions[0].Options[0].Value.Numeric, "Текстовый вариант должен остаться меткой")
	assert.Equal(t, "words", love.Questions[0].Options[0].Value.Label)
}

func TestCatalog_FindByTitle_ExactMatchOnly(t *testing.T) {
	cat, err := Load(writeCatalogFile(t, sampleCatalog))
	require.NoError(t, err)

	_, ok := cat.FindByTitle("тест на совместимость")
	assert.False(t, ok, "Поиск по названию чувствителен к регистру")

	_, ok = cat.FindByTitle("Неизвестный тест")
	assert.False(t, ok)
}

func TestCatalog_Load_RejectsEmpty(t *testing.T) {
	_, err := Load(writeCatalogFile(t, "tests: []\n"))
	assert.Error(t, err)
}

func TestCatalog_Load_RejectsDuplicateTitles(t *testing.T) {
	dup := `
tests:
  - title: "Один"
    category: "love"
    questions: []
  - title: "Один"
    category: "love"
    questions: []
`
	_, err := Load(writeCatalogFile(t, dup))
	assert.Error(t, err)
}

func TestCatalog_AllReturnsCopy(t *testing.T) {
	cat, err := Load(writeCatalogFile(t, sampleCatalog))
	require.NoError(t, err)

	all := cat.All()
	all[0].Title = "изменено"

	def, ok := cat.FindByTitle("Тест на совместимость")
	require.True(t, ok)
	assert.Equal(t, "Тест на совместимость", def.Title, "Каталог не должен меняться через возвращенный срез")
}
