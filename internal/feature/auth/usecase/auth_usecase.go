// Package usecase はauthフィーチャー（ユーザー登録・ログイン）のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"task_backend/internal/feature/auth/domain"
	"task_backend/internal/feature/auth/domain/entity"
)

// fallbackDummyHash は起動時に設定済みハッシャーでダミーハッシュを生成できなかった場合のみ使用します。
const fallbackDummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// ExistsByUsername は指定されたユーザー名が既に使われているかを返します。
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// Create は新しいユーザーをストレージに永続化します。
	// 一意制約違反の場合は domain.ErrDuplicateUsername を返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername は指定されたユーザー名に一致するユーザーを取得します。
	// ユーザーが存在しない場合、domain.ErrUserNotFound を返します。
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}

// PasswordHasher はパスワードのハッシュ化と検証を行います。
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenIssuer は認証済みユーザー名に対する署名済みトークンを発行します。
type TokenIssuer interface {
	Issue(username string) (string, error)
}

// RegisterInput はユーザー登録に必要な入力値です。
type RegisterInput struct {
	Username  string
	FirstName string
	LastName  string
	Password  string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	now    func() time.Time

	// ユーザーが存在しない場合に比較するダミーハッシュ
	// 同じハッシャーで生成し、両方の失敗経路のコストを揃える
	dummyHash string
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens TokenIssuer) *authUsecase {
	dummy, err := hasher.Hash("dummy-password-for-timing")
	if err != nil {
		slog.Warn("failed to generate dummy hash, using fallback", "error", err)
		dummy = fallbackDummyHash
	}
	return &authUsecase{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		now:       time.Now,
		dummyHash: dummy,
	}
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録します。
// 返却されるユーザーはハッシュを保持しているため、transport層で出力してはいけません。
func (u *authUsecase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if in.Username == "" {
		return nil, ErrUsernameRequired
	}

	exists, err := u.users.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, ErrDuplicateUsername
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
	}
	user.PrepareCreate(u.now())

	// 事前チェックをすり抜けた同時登録は一意インデックスで検出する
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login はユーザーを認証し、成功時に署名済みトークンを返します。
// ユーザー名が存在しない場合もパスワード不一致の場合も ErrInvalidCredentials を返します。
func (u *authUsecase) Login(ctx context.Context, username, password string) (string, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", fmt.Errorf("find user: %w", err)
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	hash := u.dummyHash
	if user != nil {
		hash = user.PasswordHash
	}
	ok := u.hasher.Verify(password, hash)

	if user == nil || !ok {
		return "", ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(user.Username)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
