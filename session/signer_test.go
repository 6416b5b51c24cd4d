package session

import (
	"context"
	"testing"

	"gatehouse/services/token"
	"gatehouse/services/user"
	"gatehouse/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type signerFixture struct {
	signer  *Signer
	manager *Manager
	users   *user.Service
	tokens  *token.Service
	db      *gorm.DB
}

func setupSigner(t *testing.T) *signerFixture {
	t.Helper()

	db := testutils.SetupTestDB(t,
		&user.User{},
		&token.VerificationToken{},
		&token.PasswordResetToken{},
		&token.TwoFactorToken{},
		&token.TwoFactorConfirmation{},
		&UserSession{},
	)
	cfg := testutils.GetTestConfig()

	manager := NewManager(cfg, NewMemoryStore())
	users := user.NewService(db, nil)
	tokens := token.NewService(cfg, db, nil)
	sessions := NewSessionService(db, manager)

	return &signerFixture{
		signer:  NewSigner(manager, users, tokens, sessions, nil),
		manager: manager,
		users:   users,
		tokens:  tokens,
		db:      db,
	}
}

func (f *signerFixture) loadSession(t *testing.T) context.Context {
	t.Helper()
	ctx, err := f.manager.Load(context.Background(), "")
	require.NoError(t, err)
	return ctx
}

func (f *signerFixture) createUser(t *testing.T, email, password string, twoFactor bool) *user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	hashStr := string(hash)

	u := &user.User{
		Name:             "Test User",
		Email:            email,
		Password:         &hashStr,
		TwoFactorEnabled: twoFactor,
	}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func TestSigner_SignIn(t *testing.T) {
	t.Run("establishes session for valid credentials", func(t *testing.T) {
		f := setupSigner(t)
		u := f.createUser(t, "alice@example.com", "secret1", false)
		ctx := f.loadSession(t)

		err := f.signer.SignIn(ctx, SignInRequest{
			Email:     "alice@example.com",
			Password:  "secret1",
			IPAddress: "192.0.2.1",
			UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
		})

		require.NoError(t, err)
		assert.Equal(t, u.ID, f.manager.Get(ctx, userIDKey))
		assert.Equal(t, "user", f.manager.GetString(ctx, roleKey))

		var tracked []UserSession
		require.NoError(t, f.db.Find(&tracked).Error)
		require.Len(t, tracked, 1)
		assert.Equal(t, u.ID, tracked[0].UserID)
		assert.Equal(t, "192.0.2.1", tracked[0].IPAddress)
		assert.Contains(t, tracked[0].Device, "Chrome")
	})

	t.Run("wrong password is CredentialsSignin", func(t *testing.T) {
		f := setupSigner(t)
		f.createUser(t, "bob@example.com", "secret1", false)
		ctx := f.loadSession(t)

		err := f.signer.SignIn(ctx, SignInRequest{Email: "bob@example.com", Password: "wrong"})

		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, ErrTypeCredentialsSignin, authErr.Type)
	})

	t.Run("unknown email is CredentialsSignin", func(t *testing.T) {
		f := setupSigner(t)
		ctx := f.loadSession(t)

		err := f.signer.SignIn(ctx, SignInRequest{Email: "ghost@example.com", Password: "whatever"})

		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, ErrTypeCredentialsSignin, authErr.Type)
	})

	t.Run("OAuth-only account is CredentialsSignin", func(t *testing.T) {
		f := setupSigner(t)
		require.NoError(t, f.users.Create(context.Background(), &user.User{
			Name:  "OAuth Only",
			Email: "oauth@example.com",
		}))
		ctx := f.loadSession(t)

		err := f.signer.SignIn(ctx, SignInRequest{Email: "oauth@example.com", Password: "whatever"})

		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, ErrTypeCredentialsSignin, authErr.Type)
	})

	t.Run("two factor account without confirmation is AccessDenied", func(t *testing.T) {
		f := setupSigner(t)
		f.createUser(t, "2fa@example.com", "secret1", true)
		ctx := f.loadSession(t)

		err := f.signer.SignIn(ctx, SignInRequest{Email: "2fa@example.com", Password: "secret1"})

		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, ErrTypeAccessDenied, authErr.Type)
	})

	t.Run("two factor confirmation is consumed by sign-in", func(t *testing.T) {
		f := setupSigner(t)
		u := f.createUser(t, "2fa-ok@example.com", "secret1", true)
		_, err := f.tokens.CreateTwoFactorConfirmation(context.Background(), u.ID)
		require.NoError(t, err)
		ctx := f.loadSession(t)

		require.NoError(t, f.signer.SignIn(ctx, SignInRequest{Email: "2fa-ok@example.com", Password: "secret1"}))

		// the one-shot confirmation is gone, a second sign-in needs a new code
		ctx2 := f.loadSession(t)
		err = f.signer.SignIn(ctx2, SignInRequest{Email: "2fa-ok@example.com", Password: "secret1"})
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, ErrTypeAccessDenied, authErr.Type)
	})
}

func TestSigner_SignOut(t *testing.T) {
	f := setupSigner(t)
	f.createUser(t, "carol@example.com", "secret1", false)
	ctx := f.loadSession(t)

	require.NoError(t, f.signer.SignIn(ctx, SignInRequest{Email: "carol@example.com", Password: "secret1"}))

	var count int64
	require.NoError(t, f.db.Model(&UserSession{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	require.NoError(t, f.signer.SignOut(ctx))

	assert.Nil(t, f.manager.Get(ctx, userIDKey))
	require.NoError(t, f.db.Model(&UserSession{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
