package util

import (
	"fmt"

	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/placemate/placemate/models"
)

var db *gorm.DB = nil

func ConnectDb(ConnStr string) error {
	config := &gorm.Config{
		PrepareStmt: true, // optimize raw queries
		Logger:      slogGorm.New(),
	}
	var err error
	db, err = gorm.Open(postgres.Open(ConnStr), config)
	if err != nil {
		return fmt.Errorf("failed to open db connection: %w", err)
	}
	return nil
}

func GetDb() *gorm.DB {
	return db
}

func GetUserByID(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetOrCreateUser resolves the authenticated caller to a database row,
// creating it from the token claims on first sight. The identity provider
// owns the id; we only mirror the display fields.
func GetOrCreateUser(db *gorm.DB, id uint, name, email, picture, role string) (*models.User, error) {
	user, err := GetUserByID(db, id)
	if err == nil {
		return user, nil
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	if role == "" {
		role = models.RoleUnassigned
	}
	user = &models.User{
		ID:      id,
		Name:    name,
		Email:   email,
		Picture: picture,
		Role:    role,
	}

	if err := db.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// GetChatPeers returns every registered user except the caller, for the
// direct-message contact list.
func GetChatPeers(db *gorm.DB, callerID uint) ([]models.User, error) {
	var users []models.User
	if err := db.Where("id <> ?", callerID).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetConversation returns the flat message log between two users, oldest
// first, regardless of direction.
func GetConversation(db *gorm.DB, userID, otherID uint) ([]models.Message, error) {
	var messages []models.Message
	err := db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func SaveMessage(db *gorm.DB, senderID, receiverID uint, content string) (*models.Message, error) {
	msg := models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := db.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}
