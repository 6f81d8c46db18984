package database

import (
	"context"
	"fmt"
	"testing"

	"bbs/internal/config"
	"bbs/internal/core/comment"
	"bbs/internal/core/outbox"
	"bbs/internal/core/post"
	"bbs/internal/core/user"
	commentPort "bbs/internal/ports/comment"
	postPort "bbs/internal/ports/post"
	userPort "bbs/internal/ports/user"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.Must(uuid.NewV4()).String())
	db, err := config.OpenDatabase(config.DatabaseConfig{Driver: "sqlite", DSN: dsn}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() { _ = config.CloseDatabase(db) })
	return db
}

func newID() string { return uuid.Must(uuid.NewV4()).String() }

func mustUser(t *testing.T, repo *UserRepositoryDatabase, username string) *user.User {
	t.Helper()
	u, err := repo.Create(context.Background(), &user.User{
		ID:           newID(),
		Username:     username,
		PasswordHash: "digest",
		PasswordSalt: "42",
	})
	require.NoError(t, err)
	return u
}

func mustPost(t *testing.T, repo *PostRepositoryDatabase, authorID, title string) *post.Post {
	t.Helper()
	p, err := repo.Create(context.Background(), &post.Post{ID: newID(), Title: title, Content: "body", AuthorID: authorID})
	require.NoError(t, err)
	return p
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepositoryDatabase(newTestDB(t))

	alice := mustUser(t, repo, "alice")

	t.Run("find by id and username", func(t *testing.T) {
		byID, err := repo.FindByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", byID.Username)

		byName, err := repo.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, byName.ID)
		assert.NotZero(t, byName.CreatedAt)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := repo.FindByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, userPort.ErrNotFound)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := repo.Create(ctx, &user.User{ID: newID(), Username: "alice", PasswordHash: "x", PasswordSalt: "1"})
		assert.ErrorIs(t, err, userPort.ErrUsernameTaken)
	})

	t.Run("delete", func(t *testing.T) {
		bob := mustUser(t, repo, "bob")
		deleted, err := repo.Delete(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, "bob", deleted.Username)

		_, err = repo.FindByID(ctx, bob.ID)
		assert.ErrorIs(t, err, userPort.ErrNotFound)

		_, err = repo.Delete(ctx, bob.ID)
		assert.ErrorIs(t, err, userPort.ErrNotFound)
	})
}

func TestPostRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepositoryDatabase(db)
	repo := NewPostRepositoryDatabase(db)

	alice := mustUser(t, users, "alice")
	bob := mustUser(t, users, "bob")

	t.Run("create loads the author", func(t *testing.T) {
		p := mustPost(t, repo, alice.ID, "hello")
		assert.Equal(t, "alice", p.Author.Username)
		assert.Equal(t, alice.ID, p.AuthorID)
		assert.NotZero(t, p.CreatedAt)

		got, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "hello", got.Title)
		assert.Equal(t, "alice", got.Author.Username)
	})

	t.Run("unknown author is rejected", func(t *testing.T) {
		_, err := repo.Create(ctx, &post.Post{ID: newID(), Title: "t", Content: "c", AuthorID: newID()})
		assert.ErrorIs(t, err, postPort.ErrAuthorNotFound)
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := repo.FindByID(ctx, newID())
		assert.ErrorIs(t, err, postPort.ErrNotFound)
	})

	t.Run("pages are newest first without overlap", func(t *testing.T) {
		var created []string
		for i := 0; i < 25; i++ {
			created = append(created, mustPost(t, repo, bob.ID, fmt.Sprintf("post %d", i)).ID)
		}

		first, err := repo.FindByAuthorID(ctx, bob.ID, 0, 20)
		require.NoError(t, err)
		second, err := repo.FindByAuthorID(ctx, bob.ID, 20, 20)
		require.NoError(t, err)
		require.Len(t, first, 20)
		require.Len(t, second, 5)

		var got []string
		for _, p := range append(first, second...) {
			got = append(got, p.ID)
		}
		for i, j := 0, len(created)-1; i < j; i, j = i+1, j-1 {
			created[i], created[j] = created[j], created[i]
		}
		assert.Equal(t, created, got)
	})

	t.Run("filters", func(t *testing.T) {
		mustPost(t, repo, alice.ID, "same")
		mustPost(t, repo, bob.ID, "same")

		byTitle, err := repo.FindByTitle(ctx, "same")
		require.NoError(t, err)
		assert.Len(t, byTitle, 2)

		aliceID, title := alice.ID, "same"
		both, err := repo.List(ctx, postPort.Filter{AuthorID: &aliceID, Title: &title, Limit: 20})
		require.NoError(t, err)
		require.Len(t, both, 1)
		assert.Equal(t, alice.ID, both[0].AuthorID)

		all, err := repo.List(ctx, postPort.Filter{Limit: 100})
		require.NoError(t, err)
		assert.Len(t, all, 28)
	})
}

func TestCommentRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepositoryDatabase(db)
	posts := NewPostRepositoryDatabase(db)
	repo := NewCommentRepositoryDatabase(db)

	alice := mustUser(t, users, "alice")
	bob := mustUser(t, users, "bob")
	p := mustPost(t, posts, alice.ID, "hello")

	c, err := repo.Create(ctx, &comment.Comment{ID: newID(), Content: "nice", AuthorID: bob.ID, PostID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, "bob", c.Author.Username)

	t.Run("find", func(t *testing.T) {
		got, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "nice", got.Content)
		assert.Equal(t, p.ID, got.PostID)

		_, err = repo.FindByID(ctx, newID())
		assert.ErrorIs(t, err, commentPort.ErrNotFound)
	})

	t.Run("dangling references are rejected", func(t *testing.T) {
		_, err := repo.Create(ctx, &comment.Comment{ID: newID(), Content: "x", AuthorID: bob.ID, PostID: newID()})
		assert.ErrorIs(t, err, commentPort.ErrReferenceNotFound)

		_, err = repo.Create(ctx, &comment.Comment{ID: newID(), Content: "x", AuthorID: newID(), PostID: p.ID})
		assert.ErrorIs(t, err, commentPort.ErrReferenceNotFound)
	})

	t.Run("by post and author", func(t *testing.T) {
		_, err := repo.Create(ctx, &comment.Comment{ID: newID(), Content: "second", AuthorID: alice.ID, PostID: p.ID})
		require.NoError(t, err)

		onPost, err := repo.FindByPostID(ctx, p.ID, 0, 20)
		require.NoError(t, err)
		require.Len(t, onPost, 2)
		assert.Equal(t, "second", onPost[0].Content)

		byBob, err := repo.FindByAuthorID(ctx, bob.ID, 0, 20)
		require.NoError(t, err)
		require.Len(t, byBob, 1)
		assert.Equal(t, c.ID, byBob[0].ID)

		paged, err := repo.FindByPostID(ctx, p.ID, 1, 20)
		require.NoError(t, err)
		require.Len(t, paged, 1)
		assert.Equal(t, "nice", paged[0].Content)
	})
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepositoryDatabase(db)
	posts := NewPostRepositoryDatabase(db)
	comments := NewCommentRepositoryDatabase(db)

	alice := mustUser(t, users, "alice")
	bob := mustUser(t, users, "bob")
	alicePost := mustPost(t, posts, alice.ID, "alice's")
	bobPost := mustPost(t, posts, bob.ID, "bob's")

	// bob comments on alice's post, alice comments on bob's post
	_, err := comments.Create(ctx, &comment.Comment{ID: newID(), Content: "b on a", AuthorID: bob.ID, PostID: alicePost.ID})
	require.NoError(t, err)
	_, err = comments.Create(ctx, &comment.Comment{ID: newID(), Content: "a on b", AuthorID: alice.ID, PostID: bobPost.ID})
	require.NoError(t, err)

	_, err = users.Delete(ctx, alice.ID)
	require.NoError(t, err)

	_, err = posts.FindByID(ctx, alicePost.ID)
	assert.ErrorIs(t, err, postPort.ErrNotFound)

	left, err := comments.List(ctx, commentPort.Filter{Limit: 100})
	require.NoError(t, err)
	assert.Empty(t, left)

	remaining, err := posts.List(ctx, postPort.Filter{Limit: 100})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, bobPost.ID, remaining[0].ID)
}

func TestOutboxRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewOutboxRepositoryDatabase(db)

	var ids []string
	for i := 0; i < 3; i++ {
		ev, err := outbox.NewEvent(outbox.PostCreated, newID(), map[string]int{"n": i})
		require.NoError(t, err)
		require.NoError(t, repo.Enqueue(ctx, ev))
		ids = append(ids, ev.ID)
	}

	pending, err := repo.GetPending(ctx, 2)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, ids[0], pending[0].ID)
	assert.Equal(t, ids[1], pending[1].ID)
	assert.JSONEq(t, `{"n":0}`, pending[0].Payload)

	require.NoError(t, repo.MarkDone(ctx, ids[0]))
	require.NoError(t, repo.MarkAttempt(ctx, ids[1], false))
	require.NoError(t, repo.MarkAttempt(ctx, ids[2], true))

	pending, err = repo.GetPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, ids[1], pending[0].ID)
	assert.Equal(t, 1, pending[0].Attempts)

	var failed outbox.Event
	require.NoError(t, db.Where("id = ?", ids[2]).First(&failed).Error)
	assert.Equal(t, outbox.StatusFailed, failed.Status)
	assert.NotNil(t, failed.ProcessedAt)

	var done outbox.Event
	require.NoError(t, db.Where("id = ?", ids[0]).First(&done).Error)
	assert.Equal(t, outbox.StatusDone, done.Status)
}

func TestSQLiteEnforcesForeignKeysWithoutDSNFlag(t *testing.T) {
	ctx := context.Background()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", newID())
	db, err := config.OpenDatabase(config.DatabaseConfig{Driver: "sqlite", DSN: dsn}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() { _ = config.CloseDatabase(db) })

	users := NewUserRepositoryDatabase(db)
	posts := NewPostRepositoryDatabase(db)

	_, err = posts.Create(ctx, &post.Post{ID: newID(), Title: "t", Content: "c", AuthorID: newID()})
	assert.ErrorIs(t, err, postPort.ErrAuthorNotFound)

	alice := mustUser(t, users, "alice")
	p := mustPost(t, posts, alice.ID, "hello")
	_, err = users.Delete(ctx, alice.ID)
	require.NoError(t, err)

	_, err = posts.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, postPort.ErrNotFound)
}
