package services

import (
	"fmt"
	"time"

	"github.com/clubstack/backend/internal/models"
	"gorm.io/gorm"
)

// PlayerService manages the tenant roster.
type PlayerService struct {
	db   *gorm.DB
	repo *ScopedRepo[models.Player, *models.Player]
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{
		db:   db,
		repo: NewScopedRepo[models.Player, *models.Player](db),
	}
}

type PlayerListRequest struct {
	Search   string `form:"search"`
	Position string `form:"position"`
}

// List returns the scope's roster, newest first. Player-role callers only
// see their own linked entry.
func (s *PlayerService) List(scope *Scope, req *PlayerListRequest) ([]models.Player, error) {
	opts := []QueryOption{WithOrder("last_name ASC, first_name ASC")}

	if OwnOnly(scope.Role, EntityPlayers) {
		if scope.PlayerID == nil {
			return []models.Player{}, nil
		}
		opts = append(opts, WithFilter("id = ?", *scope.PlayerID))
	}

	if req != nil {
		if req.Search != "" {
			like := "%" + req.Search + "%"
			opts = append(opts, WithFilter("first_name LIKE ? OR last_name LIKE ?", like, like))
		}
		if req.Position != "" {
			if !models.ValidPosition(req.Position) {
				return nil, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, req.Position)
			}
			opts = append(opts, WithFilter("positions LIKE ?", "%"+req.Position+"%"))
		}
	}

	return s.repo.List(scope, opts...)
}

// Get returns one player. Player-role callers can only fetch themselves.
func (s *PlayerService) Get(scope *Scope, id string) (*models.Player, error) {
	if OwnOnly(scope.Role, EntityPlayers) {
		if scope.PlayerID == nil || *scope.PlayerID != id {
			return nil, ErrNotFound
		}
	}
	return s.repo.Get(scope, id)
}

type CreatePlayerRequest struct {
	FirstName        string   `json:"first_name" binding:"required"`
	LastName         string   `json:"last_name" binding:"required"`
	FatherName       string   `json:"father_name"`
	MotherName       string   `json:"mother_name"`
	NationalID       string   `json:"national_id"`
	PassportNumber   string   `json:"passport_number"`
	Nationality      string   `json:"nationality"`
	PlaceOfBirth     string   `json:"place_of_birth"`
	Birthday         string   `json:"birthday"` // YYYY-MM-DD
	Positions        []string `json:"positions"`
	Email            string   `json:"email" binding:"omitempty,email"`
	Phone            string   `json:"phone"`
	EPORecordNumber  string   `json:"epo_record_number"`
	EPORecordExpiry  string   `json:"epo_record_expiry"`
	HealthCardExpiry string   `json:"health_card_expiry"`
	ProfileImageURL  string   `json:"profile_image_url"`
	Comments         string   `json:"comments"`
}

// Create adds a player to the scope's roster. Tenant ID and timestamps
// are stamped here, never taken from the caller.
func (s *PlayerService) Create(scope *Scope, req *CreatePlayerRequest) (*models.Player, error) {
	for _, pos := range req.Positions {
		if !models.ValidPosition(pos) {
			return nil, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, pos)
		}
	}

	birthday, err := parseDate(req.Birthday)
	if err != nil {
		return nil, err
	}
	epoExpiry, err := parseDate(req.EPORecordExpiry)
	if err != nil {
		return nil, err
	}
	healthExpiry, err := parseDate(req.HealthCardExpiry)
	if err != nil {
		return nil, err
	}

	player := models.Player{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		FatherName:       req.FatherName,
		MotherName:       req.MotherName,
		NationalID:       req.NationalID,
		PassportNumber:   req.PassportNumber,
		Nationality:      req.Nationality,
		PlaceOfBirth:     req.PlaceOfBirth,
		Birthday:         birthday,
		Positions:        models.PositionList(req.Positions),
		Email:            req.Email,
		Phone:            req.Phone,
		EPORecordNumber:  req.EPORecordNumber,
		EPORecordExpiry:  epoExpiry,
		HealthCardExpiry: healthExpiry,
		ProfileImageURL:  req.ProfileImageURL,
		Comments:         req.Comments,
	}

	if err := s.repo.Create(scope, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

type UpdatePlayerRequest struct {
	FirstName        *string   `json:"first_name"`
	LastName         *string   `json:"last_name"`
	FatherName       *string   `json:"father_name"`
	MotherName       *string   `json:"mother_name"`
	NationalID       *string   `json:"national_id"`
	PassportNumber   *string   `json:"passport_number"`
	Nationality      *string   `json:"nationality"`
	PlaceOfBirth     *string   `json:"place_of_birth"`
	Birthday         *string   `json:"birthday"`
	Positions        *[]string `json:"positions"`
	Email            *string   `json:"email"`
	Phone            *string   `json:"phone"`
	EPORecordNumber  *string   `json:"epo_record_number"`
	EPORecordExpiry  *string   `json:"epo_record_expiry"`
	HealthCardExpiry *string   `json:"health_card_expiry"`
	ProfileImageURL  *string   `json:"profile_image_url"`
	Comments         *string   `json:"comments"`
}

// Update applies a partial update to a player of the scope's tenant.
func (s *PlayerService) Update(scope *Scope, id string, req *UpdatePlayerRequest) (*models.Player, error) {
	fields := map[string]interface{}{}

	setStr := func(key string, v *string) {
		if v != nil {
			fields[key] = *v
		}
	}
	setStr("first_name", req.FirstName)
	setStr("last_name", req.LastName)
	setStr("father_name", req.FatherName)
	setStr("mother_name", req.MotherName)
	setStr("national_id", req.NationalID)
	setStr("passport_number", req.PassportNumber)
	setStr("nationality", req.Nationality)
	setStr("place_of_birth", req.PlaceOfBirth)
	setStr("email", req.Email)
	setStr("phone", req.Phone)
	setStr("epo_record_number", req.EPORecordNumber)
	setStr("profile_image_url", req.ProfileImageURL)
	setStr("comments", req.Comments)

	if req.Positions != nil {
		for _, pos := range *req.Positions {
			if !models.ValidPosition(pos) {
				return nil, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, pos)
			}
		}
		fields["positions"] = models.PositionList(*req.Positions)
	}

	setDate := func(key string, v *string) error {
		if v == nil {
			return nil
		}
		d, err := parseDate(*v)
		if err != nil {
			return err
		}
		fields[key] = d
		return nil
	}
	if err := setDate("birthday", req.Birthday); err != nil {
		return nil, err
	}
	if err := setDate("epo_record_expiry", req.EPORecordExpiry); err != nil {
		return nil, err
	}
	if err := setDate("health_card_expiry", req.HealthCardExpiry); err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return s.repo.Get(scope, id)
	}
	return s.repo.Update(scope, id, fields)
}

// Delete removes a player from the roster.
func (s *PlayerService) Delete(scope *Scope, id string) error {
	return s.repo.Delete(scope, id)
}

// ExpiringCredential describes a player document nearing expiry.
type ExpiringCredential struct {
	Player     models.Player `json:"player"`
	Credential string        `json:"credential"` // epo_record, health_card
	ExpiresAt  time.Time     `json:"expires_at"`
}

// ListExpiringCredentials returns players whose EPO record or health card
// expires within windowDays.
func (s *PlayerService) ListExpiringCredentials(scope *Scope, windowDays int) ([]ExpiringCredential, error) {
	if !scope.Valid() {
		return nil, ErrNoTenant
	}

	cutoff := time.Now().AddDate(0, 0, windowDays)

	players, err := s.repo.List(scope,
		WithFilter("(epo_record_expiry IS NOT NULL AND epo_record_expiry <= ?) OR (health_card_expiry IS NOT NULL AND health_card_expiry <= ?)", cutoff, cutoff),
		WithOrder("last_name ASC"),
	)
	if err != nil {
		return nil, err
	}

	var out []ExpiringCredential
	for _, p := range players {
		if p.EPORecordExpiry != nil && !p.EPORecordExpiry.After(cutoff) {
			out = append(out, ExpiringCredential{Player: p, Credential: "epo_record", ExpiresAt: *p.EPORecordExpiry})
		}
		if p.HealthCardExpiry != nil && !p.HealthCardExpiry.After(cutoff) {
			out = append(out, ExpiringCredential{Player: p, Credential: "health_card", ExpiresAt: *p.HealthCardExpiry})
		}
	}
	return out, nil
}

// parseDate parses an optional YYYY-MM-DD value.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, value)
	}
	return &d, nil
}
