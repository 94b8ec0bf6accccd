package bonuses_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/babonus/internal/errors"
	mockclock "github.com/KirkDiggler/babonus/internal/pkg/clock/mock"
	"github.com/KirkDiggler/babonus/internal/repositories/bonuses"
	"github.com/KirkDiggler/babonus/internal/testutils"
)

const (
	testParent = "Actor.fighter000000001"
	testItem   = "Actor.fighter000000001.Item.longsword0000001"
)

var testNow = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

// RepositoryTestSuite runs the same behavior against every implementation
type RepositoryTestSuite struct {
	suite.Suite
	newRepo func(c *mockclock.MockClock) bonuses.Repository

	ctrl      *gomock.Controller
	mockClock *mockclock.MockClock
	repo      bonuses.Repository
	ctx       context.Context
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockClock = mockclock.NewMockClock(s.ctrl)
	s.mockClock.EXPECT().Now().Return(testNow).AnyTimes()
	s.repo = s.newRepo(s.mockClock)
	s.ctx = context.Background()
}

func (s *RepositoryTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RepositoryTestSuite) replace(parent, id, data string) {
	_, err := s.repo.Replace(s.ctx, &bonuses.ReplaceInput{
		ParentUUID: parent,
		ID:         id,
		Data:       json.RawMessage(data),
	})
	s.Require().NoError(err)
}

func (s *RepositoryTestSuite) TestGet_NotFound() {
	_, err := s.repo.Get(s.ctx, &bonuses.GetInput{ParentUUID: testParent})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestGet_EmptyParent() {
	_, err := s.repo.Get(s.ctx, &bonuses.GetInput{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Get(s.ctx, nil)
	s.Error(err)
}

func (s *RepositoryTestSuite) TestReplaceAndGet() {
	s.replace(testParent, "bonus00000000001", `{"id":"bonus00000000001","name":"Bless"}`)
	s.replace(testParent, "bonus00000000002", `{"id":"bonus00000000002","name":"Bane"}`)

	out, err := s.repo.Get(s.ctx, &bonuses.GetInput{ParentUUID: testParent})
	s.Require().NoError(err)
	s.Equal(testParent, out.ParentUUID)
	s.Len(out.Bonuses, 2)
	s.JSONEq(`{"id":"bonus00000000001","name":"Bless"}`, string(out.Bonuses["bonus00000000001"]))
	s.True(testNow.Equal(out.UpdatedAt), "updated at %s", out.UpdatedAt)
}

func (s *RepositoryTestSuite) TestReplace_OverwritesWholeDefinition() {
	s.replace(testParent, "bonus00000000001", `{"id":"bonus00000000001","name":"Bless","enabled":true}`)
	s.replace(testParent, "bonus00000000001", `{"id":"bonus00000000001","name":"Blessed"}`)

	out, err := s.repo.Get(s.ctx, &bonuses.GetInput{ParentUUID: testParent})
	s.Require().NoError(err)
	s.Len(out.Bonuses, 1)
	s.JSONEq(`{"id":"bonus00000000001","name":"Blessed"}`, string(out.Bonuses["bonus00000000001"]))
}

func (s *RepositoryTestSuite) TestReplace_Validation() {
	testCases := []struct {
		name  string
		input *bonuses.ReplaceInput
	}{
		{name: "nil input", input: nil},
		{name: "missing parent", input: &bonuses.ReplaceInput{ID: "bonus00000000001", Data: json.RawMessage(`{}`)}},
		{name: "missing id", input: &bonuses.ReplaceInput{ParentUUID: testParent, Data: json.RawMessage(`{}`)}},
		{name: "invalid json", input: &bonuses.ReplaceInput{ParentUUID: testParent, ID: "bonus00000000001", Data: json.RawMessage(`{`)}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Replace(s.ctx, tc.input)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *RepositoryTestSuite) TestDelete() {
	s.replace(testParent, "bonus00000000001", `{}`)
	s.replace(testParent, "bonus00000000002", `{}`)

	out, err := s.repo.Delete(s.ctx, &bonuses.DeleteInput{ParentUUID: testParent, ID: "bonus00000000001"})
	s.Require().NoError(err)
	s.Equal(1, out.Remaining)

	_, err = s.repo.Delete(s.ctx, &bonuses.DeleteInput{ParentUUID: testParent, ID: "bonus00000000001"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))

	out, err = s.repo.Delete(s.ctx, &bonuses.DeleteInput{ParentUUID: testParent, ID: "bonus00000000002"})
	s.Require().NoError(err)
	s.Equal(0, out.Remaining)

	_, err = s.repo.Get(s.ctx, &bonuses.GetInput{ParentUUID: testParent})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestDelete_Validation() {
	_, err := s.repo.Delete(s.ctx, &bonuses.DeleteInput{ParentUUID: testParent})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Delete(s.ctx, &bonuses.DeleteInput{ID: "bonus00000000001"})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryTestSuite) TestListParents() {
	out, err := s.repo.ListParents(s.ctx, &bonuses.ListParentsInput{})
	s.Require().NoError(err)
	s.Empty(out.ParentUUIDs)

	s.replace(testItem, "bonus00000000001", `{}`)
	s.replace(testParent, "bonus00000000002", `{}`)

	out, err = s.repo.ListParents(s.ctx, &bonuses.ListParentsInput{})
	s.Require().NoError(err)
	s.Equal([]string{testParent, testItem}, out.ParentUUIDs)
}

func TestInMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func(c *mockclock.MockClock) bonuses.Repository {
			return bonuses.NewInMemory(c)
		},
	})
}

func TestRedisRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func(c *mockclock.MockClock) bonuses.Repository {
			client, cleanup := testutils.CreateTestRedisClient(t)
			t.Cleanup(cleanup)

			repo, err := bonuses.NewRedis(&bonuses.RedisConfig{Client: client, Clock: c})
			if err != nil {
				t.Fatalf("failed to create repository: %v", err)
			}
			return repo
		},
	})
}

func TestNewRedis_Validation(t *testing.T) {
	_, err := bonuses.NewRedis(nil)
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}

	_, err = bonuses.NewRedis(&bonuses.RedisConfig{})
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

type RedisRepositoryTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TestGet_ExistingFlagsWithoutStamp() {
	client, cleanup := testutils.CreateTestRedisClientWithContext(s.T(), func(mr *miniredis.Miniredis) {
		mr.HSet("babonus:flags:"+testParent, "bonus00000000001", `{"id":"bonus00000000001"}`)
	})
	defer cleanup()

	repo, err := bonuses.NewRedis(&bonuses.RedisConfig{Client: client})
	s.Require().NoError(err)

	out, err := repo.Get(s.ctx, &bonuses.GetInput{ParentUUID: testParent})
	s.Require().NoError(err)
	s.Len(out.Bonuses, 1)
	s.True(out.UpdatedAt.IsZero())
}

func (s *RedisRepositoryTestSuite) TestReplace_StoresUnderFlagsKey() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	defer cleanup()

	repo, err := bonuses.NewRedis(&bonuses.RedisConfig{Client: client})
	s.Require().NoError(err)

	_, err = repo.Replace(s.ctx, &bonuses.ReplaceInput{
		ParentUUID: testParent,
		ID:         "bonus00000000001",
		Data:       json.RawMessage(`{"name":"Bless"}`),
	})
	s.Require().NoError(err)

	raw, err := client.HGet(s.ctx, "babonus:flags:"+testParent, "bonus00000000001").Result()
	s.Require().NoError(err)
	s.JSONEq(`{"name":"Bless"}`, raw)

	exists, err := client.Exists(s.ctx, "babonus:updated:"+testParent).Result()
	s.Require().NoError(err)
	s.Equal(int64(1), exists)

	s.Require().NoError(testutils.FlushTestRedis(s.ctx, client))
	_, err = repo.Get(s.ctx, &bonuses.GetInput{ParentUUID: testParent})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestClosedClient() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	repo, err := bonuses.NewRedis(&bonuses.RedisConfig{Client: client})
	s.Require().NoError(err)
	cleanup()

	_, err = repo.Get(s.ctx, &bonuses.GetInput{ParentUUID: testParent})
	s.Require().Error(err)
	s.Equal(errors.CodeInternal, errors.GetCode(err))
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
