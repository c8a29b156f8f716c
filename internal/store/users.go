package store

import (
	"messenger-bot/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Users is the user record repository
type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// FindByPSID looks a user up by their platform sender id. Returns
// gorm.ErrRecordNotFound when no record exists.
func (s *Users) FindByPSID(psid string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("psid = ?", psid).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Users) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns the full collection, newest first. Never returns nil.
func (s *Users) List() ([]models.User, error) {
	users := []models.User{}
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Create inserts a new record for a first contact. Concurrent first
// contacts for the same psid resolve to a single row: the insert is an
// ON CONFLICT DO NOTHING upsert and the surviving row is read back.
func (s *Users) Create(user *models.User) error {
	res := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "psid"}},
		DoNothing: true,
	}).Create(user)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the race, adopt the existing row
		existing, err := s.FindByPSID(user.PSID)
		if err != nil {
			return err
		}
		*user = *existing
	}
	return nil
}

// Save persists all mutated fields. Last write wins.
func (s *Users) Save(user *models.User) error {
	return s.db.Save(user).Error
}
