package yieldcache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/x-xyz/yieldbot/domain/yield"
)

func rec(poolId, asset, chain string, apy, tvl float64) yield.Record {
	return yield.Record{PoolId: poolId, Asset: asset, Chain: chain, APY: &apy, Tvl: tvl}
}

func ids(records []yield.Record) []string {
	res := []string{}
	for _, r := range records {
		res = append(res, r.PoolId)
	}
	return res
}

func TestFilterByTvlBoundary(t *testing.T) {
	records := []yield.Record{
		rec("exact", "USDC", "ethereum", 5, 1000000),
		rec("below", "USDC", "ethereum", 50, 999999.99),
		rec("above", "USDC", "ethereum", 1, 2000000),
	}
	require.Equal(t, []string{"exact", "above"}, ids(FilterByTvl(records, DefaultTvlFloor)))
	require.Equal(t, []string{"exact", "above"}, ids(TopN(records, DefaultTvlFloor, 10)))
}

func TestTopNStableAndIdempotent(t *testing.T) {
	records := []yield.Record{
		rec("a", "USDC", "ethereum", 10, 2e6),
		rec("b", "USDT", "ethereum", 20, 2e6),
		rec("c", "DAI", "ethereum", 10, 2e6),
		rec("d", "WETH", "ethereum", 20, 2e6),
		rec("e", "WBTC", "ethereum", 10, 2e6),
	}
	original := append([]yield.Record{}, records...)

	first := TopN(records, DefaultTvlFloor, 3)
	second := TopN(records, DefaultTvlFloor, 3)
	require.Equal(t, []string{"b", "d", "a"}, ids(first))
	require.Equal(t, first, second)
	require.Equal(t, original, records)
}

func TestSortByAPYMissingRanksAsZero(t *testing.T) {
	records := []yield.Record{
		{PoolId: "nil", Tvl: 2e6},
		rec("neg", "X", "Y", -1, 2e6),
		rec("pos", "X", "Y", 1, 2e6),
	}
	require.Equal(t, []string{"pos", "nil", "neg"}, ids(SortByAPY(records)))
}

func TestTake(t *testing.T) {
	records := []yield.Record{rec("a", "", "", 1, 0), rec("b", "", "", 1, 0)}
	require.Len(t, Take(records, 10), 2)
	require.Len(t, Take(records, 1), 1)
	require.Len(t, Take(records, -1), 0)
}

func TestTopOne(t *testing.T) {
	_, found := TopOne([]yield.Record{rec("a", "", "", 99, 10)}, DefaultTvlFloor)
	require.False(t, found)

	top, found := TopOne([]yield.Record{
		rec("a", "", "", 5, 2e6),
		rec("b", "", "", 9, 2e6),
	}, DefaultTvlFloor)
	require.True(t, found)
	require.Equal(t, "b", top.PoolId)
}

func TestDistinct(t *testing.T) {
	records := []yield.Record{
		rec("1", "USDT", "ethereum", 1, 0),
		rec("2", "DAI", "arbitrum", 1, 0),
		rec("3", "USDT", "", 1, 0),
		rec("4", "", "ethereum", 1, 0),
	}
	require.Equal(t, []string{"DAI", "USDT"}, Distinct(records, AssetOf))
	require.Equal(t, []string{"arbitrum", "ethereum"}, Distinct(records, ChainOf))
	require.Equal(t, []string{}, Distinct(nil, ChainOf))
}

func TestGroupKeepMax(t *testing.T) {
	records := []yield.Record{
		rec("eth-1", "USDC", "ethereum", 3, 0),
		rec("arb-1", "USDC", "arbitrum", 4, 0),
		rec("eth-2", "USDC", "ethereum", 8, 0),
		rec("arb-2", "USDC", "arbitrum", 4, 0),
	}
	require.Equal(t, []string{"eth-2", "arb-1"}, ids(GroupKeepMax(records, ChainOf)))
}

func TestScopedTop(t *testing.T) {
	records := []yield.Record{
		rec("eth-1", "USDC", "ethereum", 3, 5e5),
		rec("eth-2", "USDC", "ethereum", 8, 5e5),
		rec("arb-1", "USDC", "arbitrum", 6, 5e5),
		rec("op-1", "USDC", "optimism", 7, 5e5),
		rec("base-1", "USDC", "base", 9, 5e5),
		rec("poly-1", "USDC", "polygon", 50, 10),
		rec("dai-1", "DAI", "ethereum", 99, 5e5),
	}
	res := ScopedTop(records, AssetMatcher("USDC"), ChainOf, DefaultScopedTvlFloor, 3)
	require.Equal(t, []string{"base-1", "eth-2", "op-1"}, ids(res))

	require.Empty(t, ScopedTop(records, AssetMatcher("usdc"), ChainOf, DefaultScopedTvlFloor, 3))
}

func TestChainMatcher(t *testing.T) {
	records := []yield.Record{
		rec("1", "USDC", "Arbitrum", 1, 0),
		rec("2", "USDC", "zk_sync_era", 1, 0),
		rec("3", "USDC", "Ethereum", 1, 0),
	}
	match := func(chain string) []string {
		m := ChainMatcher(records, chain)
		res := []string{}
		for _, r := range records {
			if m(r) {
				res = append(res, r.PoolId)
			}
		}
		return res
	}

	require.Equal(t, []string{"1"}, match("arbitrum"))
	require.Equal(t, []string{"2"}, match("zksync"))
	require.Equal(t, []string{"2"}, match("ZkSync_Era"))
	require.Equal(t, []string{"3"}, match("Ethereum_Mainnet"))
	require.Equal(t, []string{}, match("solana"))
	require.Equal(t, []string{}, match("_"))
}
