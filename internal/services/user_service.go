package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"school_transport/internal/models"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type CreateUserInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Status   string `json:"status" binding:"omitempty,user_status"`
}

// CreatedUser is a new account. GeneratedPassword is set only when the
// caller did not supply a password.
type CreatedUser struct {
	models.User
	GeneratedPassword string `json:"generatedPassword,omitempty"`
}

// UpdateUserInput is a partial update; nil fields keep their stored value.
type UpdateUserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Status   *string `json:"status" binding:"omitempty,user_status"`
}

type ProfileInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
	Phone *string `json:"phone"`
}

// Profile is the authenticated user's view of their own account.
type Profile struct {
	ID        uint              `json:"id"`
	FirstName string            `json:"firstName"`
	LastName  string            `json:"lastName"`
	Role      models.Role       `json:"role"`
	Status    models.UserStatus `json:"status"`
	Phone     string            `json:"phone"`
	Email     string            `json:"email"`
}

// Create inserts a user and, for the driver role, its driver profile in the
// same transaction.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*CreatedUser, error) {
	role := models.NormalizeRole(in.Role)

	out := &CreatedUser{}
	password := in.Password
	if password == "" {
		generated, err := DefaultPassword(role)
		if err != nil {
			return nil, err
		}
		password = generated
		out.GeneratedPassword = generated
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	status := models.UserStatus(in.Status)
	if status == "" {
		status = models.UserActive
	}
	if !status.IsValid() {
		return nil, invalid("unknown user status %q", in.Status)
	}

	user := models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
		Phone:    strings.TrimSpace(in.Phone),
		Address:  in.Address,
		Password: hash,
		Role:     role,
		Status:   status,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return dbError(err, "create user")
		}
		return provisionRole(tx, &user)
	})
	if err != nil {
		return nil, err
	}

	out.User = user
	return out, nil
}

// provisionRole creates whatever role-specific rows an account needs. It is
// safe to call repeatedly for the same user.
func provisionRole(tx *gorm.DB, user *models.User) error {
	switch user.Role {
	case models.RoleDriver:
		driver := models.Driver{UserID: user.ID, Status: models.DriverPending}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).Create(&driver).Error
		if err != nil {
			return fmt.Errorf("provision driver for user %d: %w", user.ID, err)
		}
		return nil
	case models.RoleParent, models.RoleAdmin:
		return nil
	default:
		// Unrecognized roles are stored as given and get no profile rows.
		return nil
	}
}

// List returns every user, newest id first.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("id DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, dbError(err, "get user")
	}
	return &user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", strings.TrimSpace(email)).First(&user).Error; err != nil {
		return nil, dbError(err, "get user by email")
	}
	return &user, nil
}

// Update merges the patch into the stored user. The password is re-hashed
// only when a new one is given, and moving to the driver role provisions a
// driver profile. Moving away from it leaves the profile in place.
func (s *UserService) Update(ctx context.Context, id uint, in UpdateUserInput) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return dbError(err, "get user")
		}

		if in.Name != nil {
			user.Name = strings.TrimSpace(*in.Name)
		}
		if in.Email != nil {
			user.Email = strings.TrimSpace(*in.Email)
		}
		if in.Phone != nil {
			user.Phone = strings.TrimSpace(*in.Phone)
		}
		if in.Address != nil {
			user.Address = *in.Address
		}
		if in.Role != nil {
			user.Role = models.NormalizeRole(*in.Role)
		}
		if in.Status != nil {
			status := models.UserStatus(*in.Status)
			if !status.IsValid() {
				return invalid("unknown user status %q", *in.Status)
			}
			user.Status = status
		}
		if user.Status == "" {
			user.Status = models.UserActive
		}
		if in.Password != nil && *in.Password != "" {
			hash, err := HashPassword(*in.Password)
			if err != nil {
				return err
			}
			user.Password = hash
		}

		if err := tx.Save(&user).Error; err != nil {
			return dbError(err, "update user")
		}
		return provisionRole(tx, &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile changes the contact fields of an account and nothing else.
func (s *UserService) UpdateProfile(ctx context.Context, id uint, in ProfileInput) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		user.Email = strings.TrimSpace(*in.Email)
	}
	if in.Phone != nil {
		user.Phone = strings.TrimSpace(*in.Phone)
	}

	err = s.db.WithContext(ctx).Model(user).
		Select("name", "email", "phone").
		Updates(map[string]interface{}{"name": user.Name, "email": user.Email, "phone": user.Phone}).Error
	if err != nil {
		return nil, dbError(err, "update profile")
	}
	return user, nil
}

// Delete removes the user; the driver profile goes with it.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// Login checks the credentials of an account. Unknown email, inactive
// account and wrong password fail with distinct errors.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsActive() {
		return nil, ErrInactiveUser
	}
	if !CheckPassword(user.Password, password) {
		return nil, ErrBadCredentials
	}
	return user, nil
}

func (s *UserService) Profile(ctx context.Context, id uint) (*Profile, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	first, last := user.SplitName()
	return &Profile{
		ID:        user.ID,
		FirstName: first,
		LastName:  last,
		Role:      user.Role,
		Status:    user.Status,
		Phone:     user.Phone,
		Email:     user.Email,
	}, nil
}
