package services

import (
	"fmt"
	"math/rand"
	"time"

	"vibelink-backend/internal/errs"
	"vibelink-backend/internal/models"

	"gorm.io/gorm"
)

type RoomService struct {
	db *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{db: db}
}

func (s *RoomService) CreateRoom(ownerID uint, title string) (*models.Room, error) {
	code := s.generateUniqueCode()
	room := models.Room{
		OwnerID: ownerID,
		Code:    code,
		Title:   title,
		Status:  models.RoomStatusActive,
	}
	if err := s.db.Create(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *RoomService) GetRoom(roomID uint) (*models.Room, error) {
	var room models.Room
	if err := s.db.First(&room, roomID).Error; err != nil {
		return nil, errs.ErrRoomNotFound
	}
	return &room, nil
}

func (s *RoomService) GetRoomByCode(code string) (*models.Room, error) {
	var room models.Room
	if err := s.db.Where("code = ? AND status = ?", code, models.RoomStatusActive).
		First(&room).Error; err != nil {
		return nil, errs.ErrRoomNotFound
	}
	return &room, nil
}

func (s *RoomService) ListActiveRooms(limit int) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.db.Where("status = ?", models.RoomStatusActive).
		Order("created_at DESC").
		Limit(limit).
		Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// CloseRoom closes the room and finishes any sessions still running in it.
func (s *RoomService) CloseRoom(roomID, ownerID uint) error {
	var room models.Room
	if err := s.db.Where("id = ? AND owner_id = ?", roomID, ownerID).First(&room).Error; err != nil {
		return errs.ErrRoomNotFound
	}
	room.Status = models.RoomStatusClosed
	if err := s.db.Save(&room).Error; err != nil {
		return err
	}

	return s.db.Model(&models.GameSession{}).
		Where("room_id = ? AND status NOT IN ?", roomID,
			[]string{models.SessionStatusFinished, models.SessionStatusCancelled}).
		Updates(map[string]interface{}{
			"status":   models.SessionStatusCancelled,
			"ended_at": time.Now(),
		}).Error
}

func (s *RoomService) generateUniqueCode() string {
	for {
		code := fmt.Sprintf("%06d", rand.Intn(1000000))
		var count int64
		s.db.Model(&models.Room{}).
			Where("code = ? AND status = ?", code, models.RoomStatusActive).
			Count(&count)
		if count == 0 {
			return code
		}
	}
}
