package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"guild/internal/domain/entity"
	"guild/internal/infra/persistence/blobstore"
	"guild/internal/infra/persistence/memory"
	"guild/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func TestRosterService_Open_LoadsSavedHeroes(t *testing.T) {
	fx := createTestRosterService(t)

	saved := []*entity.Hero{entity.NewHero("Aria", 3), entity.NewVeteran("Bran", 7, 2)}
	fx.gateway.EXPECT().Load(fx.ctx).Return(saved, nil).Once()

	require.NoError(t, fx.service.Open(fx.ctx))

	heroes := fx.service.List(fx.ctx)
	require.Len(t, heroes, 2)
	assert.Equal(t, "Aria", heroes[0].Name)
	assert.Equal(t, entity.KindVeteran, heroes[1].Kind())
	assert.Contains(t, fx.logs.messages(), "roster loaded")
}

func TestRosterService_Recruit_NormalAndVeteran(t *testing.T) {
	fx := createTestRosterService(t)

	fx.gateway.EXPECT().Save(fx.ctx, mock.Anything).Return(nil).Twice()

	normal, err := fx.service.Recruit(fx.ctx, &usecase.RecruitInput{Name: "Aria", Level: 3})
	require.NoError(t, err)
	assert.Equal(t, entity.KindNormal, normal.Kind())

	veteran, err := fx.service.Recruit(fx.ctx, &usecase.RecruitInput{Name: "Bran", Level: 7, BattlesWon: intPtr(12)})
	require.NoError(t, err)
	assert.Equal(t, entity.KindVeteran, veteran.Kind())
	assert.Equal(t, 12, veteran.Veteran.BattlesWon)

	heroes := fx.service.List(fx.ctx)
	require.Len(t, heroes, 2)
	assert.Same(t, normal, heroes[0])
	assert.Same(t, veteran, heroes[1])
}

func TestRosterService_Recruit_SavesFullRoster(t *testing.T) {
	fx := createTestRosterService(t)

	var saved []*entity.Hero
	fx.gateway.EXPECT().Save(fx.ctx, mock.Anything).
		Run(func(_ context.Context, heroes []*entity.Hero) { saved = heroes }).
		Return(nil).Twice()

	_, err := fx.service.Recruit(fx.ctx, &usecase.RecruitInput{Name: "Aria", Level: 3})
	require.NoError(t, err)
	_, err = fx.service.Recruit(fx.ctx, &usecase.RecruitInput{Name: "Mark", Level: 5})
	require.NoError(t, err)

	require.Len(t, saved, 2)
	assert.Equal(t, "Aria", saved[0].Name)
	assert.Equal(t, "Mark", saved[1].Name)
}

func TestRosterService_FindAndSearch(t *testing.T) {
	fx := createTestRosterService(t)

	fx.gateway.EXPECT().Load(fx.ctx).Return([]*entity.Hero{
		entity.NewHero("Aria", 1),
		entity.NewHero("Mark", 2),
		entity.NewHero("Zed", 3),
	}, nil).Once()
	require.NoError(t, fx.service.Open(fx.ctx))

	hero, ok := fx.service.Find(fx.ctx, "aria")
	require.True(t, ok)
	assert.Equal(t, "Aria", hero.Name)

	_, ok = fx.service.Find(fx.ctx, "ghost")
	assert.False(t, ok)

	matches := fx.service.Search(fx.ctx, "ar")
	require.Len(t, matches, 2)
	assert.Equal(t, "Aria", matches[0].Name)
	assert.Equal(t, "Mark", matches[1].Name)

	assert.Empty(t, fx.service.Search(fx.ctx, "xyz"))
	assert.Contains(t, fx.logs.messages(), "search without results")
}

func TestRosterService_Train(t *testing.T) {
	fx := createTestRosterService(t)

	fx.gateway.EXPECT().Load(fx.ctx).Return([]*entity.Hero{entity.NewHero("Aria", 3)}, nil).Once()
	fx.gateway.EXPECT().Save(fx.ctx, mock.Anything).Return(nil).Once()
	require.NoError(t, fx.service.Open(fx.ctx))

	ok, err := fx.service.Train(fx.ctx, "Aria", 9)
	require.NoError(t, err)
	assert.True(t, ok)

	hero, _ := fx.service.Find(fx.ctx, "Aria")
	assert.Equal(t, 9, hero.Level)

	// A miss must not save.
	ok, err = fx.service.Train(fx.ctx, "Ghost", 9)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRosterService_Dismiss(t *testing.T) {
	fx := createTestRosterService(t)

	fx.gateway.EXPECT().Load(fx.ctx).Return([]*entity.Hero{entity.NewHero("Aria", 3)}, nil).Once()
	fx.gateway.EXPECT().Save(fx.ctx, mock.Anything).Return(nil).Once()
	require.NoError(t, fx.service.Open(fx.ctx))

	ok, err := fx.service.Dismiss(fx.ctx, "ARIA")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, fx.logs.count(slog.LevelWarn))

	ok, err = fx.service.Dismiss(fx.ctx, "Aria")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, fx.service.List(fx.ctx))
}

func TestRosterService_Report(t *testing.T) {
	fx := createTestRosterService(t)

	fx.gateway.EXPECT().Load(fx.ctx).Return([]*entity.Hero{
		entity.NewHero("first", 5),
		entity.NewHero("top", 9),
		entity.NewVeteran("second", 5, 3),
	}, nil).Once()
	require.NoError(t, fx.service.Open(fx.ctx))

	report, err := fx.service.Report(fx.ctx)
	require.NoError(t, err)

	require.Len(t, report.Ranked, 3)
	assert.Equal(t, []int{9, 5, 5}, []int{report.Ranked[0].Level, report.Ranked[1].Level, report.Ranked[2].Level})
	assert.Equal(t, "first", report.Ranked[1].Name)
	assert.Equal(t, "second", report.Ranked[2].Name)
	assert.Equal(t, 3, report.Count)
	assert.InDelta(t, 6.33, report.AverageLevel, 0.005)
	assert.Equal(t, 1, report.VeteranCount)
}

func TestRosterService_Close_SavesOnceMore(t *testing.T) {
	fx := createTestRosterService(t)

	fx.gateway.EXPECT().Save(fx.ctx, mock.Anything).Return(nil).Once()

	require.NoError(t, fx.service.Close(fx.ctx))
	assert.Contains(t, fx.logs.messages(), "session closed")
}

func TestRosterService_RoundTripThroughGateway(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	first := NewRosterService(memory.NewHeroRepository(), blobstore.NewRosterGateway(bucket, "gremio.json"), logger)
	require.NoError(t, first.Open(ctx))

	inputs := []*usecase.RecruitInput{
		{Name: "Aria", Level: 3},
		{Name: "Bran", Level: 7, BattlesWon: intPtr(12)},
		{Name: "Cora", Level: 1, BattlesWon: intPtr(0)},
		{Name: "Dax", Level: -2},
	}
	for _, input := range inputs {
		_, err := first.Recruit(ctx, input)
		require.NoError(t, err)
	}
	require.NoError(t, first.Close(ctx))

	second := NewRosterService(memory.NewHeroRepository(), blobstore.NewRosterGateway(bucket, "gremio.json"), logger)
	require.NoError(t, second.Open(ctx))

	heroes := second.List(ctx)
	require.Len(t, heroes, len(inputs))
	for i, input := range inputs {
		assert.Equal(t, input.Name, heroes[i].Name)
		assert.Equal(t, input.Level, heroes[i].Level)
		if input.BattlesWon == nil {
			assert.Equal(t, entity.KindNormal, heroes[i].Kind())

			continue
		}
		require.Equal(t, entity.KindVeteran, heroes[i].Kind())
		assert.Equal(t, *input.BattlesWon, heroes[i].Veteran.BattlesWon)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	level, err := usecase.ParseLevel(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, 12, level)

	level, err = usecase.ParseLevel("-3")
	require.NoError(t, err)
	assert.Equal(t, -3, level)

	_, err = usecase.ParseLevel("doce")
	require.Error(t, err)

	battles, err := usecase.ParseBattles("4")
	require.NoError(t, err)
	assert.Equal(t, 4, battles)

	_, err = usecase.ParseBattles("-1")
	require.Error(t, err)
	_, err = usecase.ParseBattles("4.5")
	require.Error(t, err)
}
