// Package sqlite is a GORM-backed read model of the tables the hub needs:
// chat room membership and aux (working status) sessions.
package sqlite

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/dkeye/chathub/internal/config"
	"github.com/dkeye/chathub/internal/core"
	"github.com/dkeye/chathub/internal/domain"
)

var _ core.Storage = (*Store)(nil)

// Store implements core.Storage.
type Store struct {
	db *gorm.DB
}

type chatRoomMemberModel struct {
	RoomID   string `gorm:"primaryKey"`
	UserID   string `gorm:"primaryKey"`
	JoinedAt time.Time
}

func (chatRoomMemberModel) TableName() string { return "chat_room_members" }

type auxSessionModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"index"`
	Name      string
	Status    string
	StartedAt time.Time
	EndedAt   *time.Time `gorm:"index"`
}

func (auxSessionModel) TableName() string { return "aux_sessions" }

// NewStore opens a SQLite database at the provided path.
func NewStore(cfg config.DatabaseConfig) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate applies schema updates.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&chatRoomMemberModel{}, &auxSessionModel{})
}

// GetChatRoomMembers returns an empty list for a room nobody is in.
func (s *Store) GetChatRoomMembers(ctx context.Context, roomID domain.RoomID) ([]domain.RoomMember, error) {
	var rows []chatRoomMemberModel
	if err := s.db.WithContext(ctx).Where("room_id = ?", string(roomID)).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.RoomMember, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.RoomMember{ID: domain.UserID(r.UserID)})
	}
	return out, nil
}

// GetAllActiveAuxSessions lists sessions that have not ended, oldest first.
func (s *Store) GetAllActiveAuxSessions(ctx context.Context) ([]domain.AuxSession, error) {
	var rows []auxSessionModel
	if err := s.db.WithContext(ctx).Where("ended_at IS NULL").Order("started_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.AuxSession, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.AuxSession{
			UserID: domain.UserID(r.UserID),
			Name:   r.Name,
			Status: r.Status,
			Since:  r.StartedAt,
		})
	}
	return out, nil
}

// AddRoomMember and StartAuxSession exist for seeding and tests; the CRUD
// application owns these tables in production.
func (s *Store) AddRoomMember(ctx context.Context, roomID domain.RoomID, userID domain.UserID) error {
	return s.db.WithContext(ctx).Create(&chatRoomMemberModel{
		RoomID:   string(roomID),
		UserID:   string(userID),
		JoinedAt: time.Now(),
	}).Error
}

func (s *Store) RemoveRoomMember(ctx context.Context, roomID domain.RoomID, userID domain.UserID) error {
	return s.db.WithContext(ctx).
		Where("room_id = ? AND user_id = ?", string(roomID), string(userID)).
		Delete(&chatRoomMemberModel{}).Error
}

func (s *Store) StartAuxSession(ctx context.Context, sess domain.AuxSession) (string, error) {
	m := auxSessionModel{
		UserID:    string(sess.UserID),
		Name:      sess.Name,
		Status:    sess.Status,
		StartedAt: sess.Since,
	}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return "", err
	}
	return strconv.FormatUint(uint64(m.ID), 10), nil
}

func (s *Store) EndAuxSession(ctx context.Context, id string, at time.Time) error {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return fmt.Errorf("aux session id %q: %w", id, err)
	}
	return s.db.WithContext(ctx).Model(&auxSessionModel{}).Where("id = ?", n).Update("ended_at", at).Error
}
