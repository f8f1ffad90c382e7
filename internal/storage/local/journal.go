package local

import (
	"encoding/json"
	"os"
	"sync"

	"gw-converter-cli/internal/models"
)

// Journal локальный журнал успешных конвертаций в JSON-файле.
// Новые записи добавляются в начало, журнал доступен без бэкенда.
type Journal struct {
	mu       sync.Mutex
	entries  []models.JournalEntry
	filePath string
}

func NewJournal(filePath string) (*Journal, error) {
	j := &Journal{
		filePath: filePath,
	}
	if err := j.load(); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *Journal) load() error {
	data, err := os.ReadFile(j.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			j.entries = []models.JournalEntry{}
			return nil
		}
		return err
	}
	return json.Unmarshal(data, &j.entries)
}

func (j *Journal) Append(e models.JournalEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append([]models.JournalEntry{e}, j.entries...)
	return j.save()
}

// Records возвращает копию записей, новые первыми.
func (j *Journal) Records() []models.JournalEntry {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]models.JournalEntry, len(j.entries))
	copy(out, j.entries)
	return out
}

func (j *Journal) save() error {
	data, err := json.Marshal(j.entries)
	if err != nil {
		return err
	}
	return os.WriteFile(j.filePath, data, 0644)
}
