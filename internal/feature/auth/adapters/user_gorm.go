// Package adapters はGORMを使ったユーザーストアを提供します。
package adapters

import (
	"context"
	stderrors "errors"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"task_backend/internal/feature/auth/domain"
	"task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/feature/auth/usecase"
	"task_backend/internal/platform/db"
	"task_backend/internal/shared/mutation"
)

// userGormはユーザーストアのGORM実装です。
// 認証サービスとuserリソースの両方から利用されます。
type userGorm struct {
	db *gorm.DB
}

// コンパイル時にuserGormが両方のインターフェースを実装していることを確認する。
var (
	_ usecase.UserRepository       = (*userGorm)(nil)
	_ mutation.Store[*entity.User] = (*userGorm)(nil)
)

// NewUserGormは、指定された gorm.DB接続を使用するuserGormの
// 新しいインスタンスを返します（DI用のコンストラクタ）
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// ExistsByUsernameはユーザー名をキーにユーザの存在を確認します。
func (r *userGorm) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "userGorm.ExistsByUsername")
	}
	return count > 0, nil
}

// CreateはユーザをDBに追加します。
// 一意インデックス違反の場合は domain.ErrDuplicateUsername を返します。
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("userGorm.Create: nil user")
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return domain.ErrDuplicateUsername
		}
		return errors.Wrap(err, "userGorm.Create")
	}
	return nil
}

// InsertはmutationストアとしてのCreateです。
func (r *userGorm) Insert(ctx context.Context, u *entity.User) error {
	return r.Create(ctx, u)
}

// FindByUsernameはユーザー名をキーにユーザを検索します。
// 該当するユーザが存在しない場合は domain.ErrUserNotFound を返します。
func (r *userGorm) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "userGorm.FindByUsername")
	}
	return &u, nil
}

// FindByIDはIDをキーにユーザを検索します。
// 該当するユーザが存在しない場合、domain.ErrUserNotFound を返します。
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "userGorm.FindByID")
	}
	return &u, nil
}

// FindAllは全ユーザをID順に返します。
func (r *userGorm) FindAll(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "userGorm.FindAll")
	}
	return users, nil
}

// ExistsはIDをキーにユーザの存在を確認します。
func (r *userGorm) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "userGorm.Exists")
	}
	return count > 0, nil
}

// Replaceはu.IDのユーザのプロフィール列を上書きし、versionを1つ進めます。
// u.Versionが0以外の場合は保存済みのversionと一致する必要があります。
// パスワードハッシュは上書き対象に含みません。
func (r *userGorm) Replace(ctx context.Context, u *entity.User) (bool, error) {
	q := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", u.ID)
	if u.Version != 0 {
		q = q.Where("version = ?", u.Version)
	}
	res := q.Updates(map[string]any{
		"username":   u.Username,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"created_on": u.CreatedOn,
		"version":    gorm.Expr("version + 1"),
	})
	if res.Error != nil {
		if db.IsUniqueViolation(res.Error) {
			return false, domain.ErrDuplicateUsername
		}
		return false, errors.Wrap(res.Error, "userGorm.Replace")
	}
	return res.RowsAffected > 0, nil
}

// Removeはユーザを物理削除します。
// 削除された行が無い場合は domain.ErrUserNotFound を返します。
func (r *userGorm) Remove(ctx context.Context, u *entity.User) error {
	res := r.db.WithContext(ctx).Delete(&entity.User{}, u.ID)
	if res.Error != nil {
		return errors.Wrap(res.Error, "userGorm.Remove")
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
