package repository

import (
	"github.com/Baaaki/screenshelf/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateWithRoleBootstrap inserts user and decides its role atomically: the
// transaction that manages to insert the first_admin claim makes user an
// ADMIN, every other one a MEMBER. A failed insert rolls the claim back.
func (r *UserRepository) CreateWithRoleBootstrap(user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		claim := &models.BootstrapClaim{Key: models.FirstAdminClaim, UserID: user.ID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(claim)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 1 {
			user.Role = models.RoleAdmin
		} else {
			user.Role = models.RoleMember
		}

		return tx.Create(user).Error
	})
}

// FindByEmailOrNickName returns any user colliding with either value.
func (r *UserRepository) FindByEmailOrNickName(email, nickName string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ? OR nick_name = ?", email, nickName).First(&user).Error
	return firstOrNil(&user, err)
}

func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	return firstOrNil(&user, err)
}

func (r *UserRepository) GetUserByNickName(nickName string) (*models.User, error) {
	var user models.User
	err := r.db.Where("nick_name = ?", nickName).First(&user).Error
	return firstOrNil(&user, err)
}

func (r *UserRepository) GetUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ?", id).First(&user).Error
	return firstOrNil(&user, err)
}

// ListUsers returns one page of users, newest first.
func (r *UserRepository) ListUsers(req models.PageRequest) (*models.Page[models.User], error) {
	return paginate[models.User](r.db.Model(&models.User{}), req, func(q *gorm.DB) *gorm.DB {
		return q.Order("created_at DESC").Order("id")
	})
}

// UpdateUser writes every column of user.
func (r *UserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// SetRole changes a user's role; used for out-of-band promotion.
func (r *UserRepository) SetRole(id uuid.UUID, role models.Role) error {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
