package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/yieldbot/base/ctx"
	hcdomain "github.com/x-xyz/yieldbot/domain/healthcheck"
	"github.com/x-xyz/yieldbot/domain/mocks"
	"github.com/x-xyz/yieldbot/domain/yield"
)

func TestCheck(t *testing.T) {
	down := errors.New("down")
	present := []yield.CacheStatus{{Name: "snapshot", Present: true}, {Name: "top_one"}}
	absent := []yield.CacheStatus{{Name: "snapshot"}, {Name: "top_one"}}

	tests := []struct {
		name     string
		mongoErr error
		redisErr error
		status   []yield.CacheStatus
		want     hcdomain.Report
	}{
		{
			name:   "healthy",
			status: present,
			want: hcdomain.Report{Healthy: true, Checks: map[string]string{
				"mongo": "ok", "redis": "ok", "snapshot": "ok",
			}},
		},
		{
			name:     "mongo down",
			mongoErr: down,
			status:   present,
			want: hcdomain.Report{Healthy: false, Checks: map[string]string{
				"mongo": "down", "redis": "ok", "snapshot": "ok",
			}},
		},
		{
			name:     "redis down",
			redisErr: down,
			status:   present,
			want: hcdomain.Report{Healthy: false, Checks: map[string]string{
				"mongo": "ok", "redis": "down", "snapshot": "ok",
			}},
		},
		{
			name:     "redis not configured",
			redisErr: hcdomain.ErrDisabled,
			status:   present,
			want: hcdomain.Report{Healthy: true, Checks: map[string]string{
				"mongo": "ok", "redis": "disabled", "snapshot": "ok",
			}},
		},
		{
			name:   "snapshot missing",
			status: absent,
			want: hcdomain.Report{Healthy: true, Checks: map[string]string{
				"mongo": "ok", "redis": "ok", "snapshot": "missing",
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewHealthCheckRepo(t)
			caches := mocks.NewYieldService(t)
			repo.On("PingMongo", mock.Anything).Return(tt.mongoErr).Once()
			repo.On("PingRedis", mock.Anything).Return(tt.redisErr).Once()
			caches.On("Status", mock.Anything).Return(tt.status).Once()

			require.Equal(t, tt.want, New(repo, caches).Check(ctx.Background()))
		})
	}
}

func TestCheckWithoutCaches(t *testing.T) {
	repo := mocks.NewHealthCheckRepo(t)
	repo.On("PingMongo", mock.Anything).Return(nil).Once()
	repo.On("PingRedis", mock.Anything).Return(hcdomain.ErrDisabled).Once()

	report := New(repo, nil).Check(ctx.Background())
	require.True(t, report.Healthy)
	require.Equal(t, map[string]string{"mongo": "ok", "redis": "disabled"}, report.Checks)
}
