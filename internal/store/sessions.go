package store

import (
	"errors"
	"log"
	"sync"

	"messenger-bot/internal/bot"
	"messenger-bot/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MemorySessions keeps conversation phases in-process. Phases do not
// survive a restart, which matches the conversation's ephemeral contract.
type MemorySessions struct {
	mu     sync.RWMutex
	phases map[string]bot.Phase
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{phases: make(map[string]bot.Phase)}
}

func (s *MemorySessions) Get(psid string) bot.Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if phase, ok := s.phases[psid]; ok {
		return phase
	}
	return bot.PhaseStart
}

func (s *MemorySessions) Set(psid string, phase bot.Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phases[psid] = phase
}

func (s *MemorySessions) Clear(psid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.phases, psid)
}

// DBSessions persists phases to the conversation_sessions table so a
// multi-process deployment shares them. Selected with SESSION_BACKEND=db.
type DBSessions struct {
	db *gorm.DB
}

func NewDBSessions(db *gorm.DB) *DBSessions {
	return &DBSessions{db: db}
}

func (s *DBSessions) Get(psid string) bot.Phase {
	var session models.ConversationSession
	err := s.db.Where("psid = ?", psid).First(&session).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error reading session for %s: %v", psid, err)
		}
		return bot.PhaseStart
	}
	return bot.Phase(session.Phase)
}

func (s *DBSessions) Set(psid string, phase bot.Phase) {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "psid"}},
		DoUpdates: clause.AssignmentColumns([]string{"phase", "updated_at"}),
	}).Create(&models.ConversationSession{PSID: psid, Phase: string(phase)}).Error
	if err != nil {
		log.Printf("Error saving session for %s: %v", psid, err)
	}
}

func (s *DBSessions) Clear(psid string) {
	err := s.db.Where("psid = ?", psid).Delete(&models.ConversationSession{}).Error
	if err != nil {
		log.Printf("Error clearing session for %s: %v", psid, err)
	}
}
