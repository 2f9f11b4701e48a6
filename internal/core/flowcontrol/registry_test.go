package flowcontrol

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-mcast/internal/config"
	fcif "github.com/dep2p/go-mcast/pkg/interfaces/flowcontrol"
)

func newTestRegistry() *Registry {
	return NewRegistry(config.DefaultFlowControlConfig())
}

// ============================================================================
//                              Lookup 测试
// ============================================================================

func TestRegistry_LookupBuiltins(t *testing.T) {
	r := newTestRegistry()

	for _, name := range []string{StrategyUnicastMax, StrategyMulticastMax, StrategyMulticastMin} {
		supplier, err := r.Lookup(name)
		require.NoError(t, err, "name=%q", name)

		s, err := supplier(testParams(""))
		require.NoError(t, err)
		assert.NoError(t, s.Close())
	}
}

func TestRegistry_LookupUnknown(t *testing.T) {
	r := newTestRegistry()

	_, err := r.Lookup("no_such_strategy")
	assert.ErrorIs(t, err, fcif.ErrUnknownStrategy)
}

// 未命中的名字委托外部解析器
func TestRegistry_Resolver(t *testing.T) {
	r := newTestRegistry()

	resolved := false
	r.SetResolver(func(name string) (fcif.Supplier, bool) {
		if name != "custom" {
			return nil, false
		}
		return func(params fcif.ChannelParams) (fcif.Strategy, error) {
			resolved = true
			return NewMaxStrategy(params)
		}, true
	})

	supplier, err := r.Lookup("custom")
	require.NoError(t, err)

	_, err = supplier(testParams(""))
	require.NoError(t, err)
	assert.True(t, resolved)

	_, err = r.Lookup("still_missing")
	assert.ErrorIs(t, err, fcif.ErrUnknownStrategy)
}

// 内置条目优先于解析器
func TestRegistry_BuiltinBeforeResolver(t *testing.T) {
	r := newTestRegistry()
	r.SetResolver(func(string) (fcif.Supplier, bool) {
		t.Fatal("内置名不应触发解析器")
		return nil, false
	})

	_, err := r.Lookup(StrategyMulticastMin)
	assert.NoError(t, err)
}

// ============================================================================
//                              Select 决策表测试
// ============================================================================

func TestRegistry_SelectFallbackWhenNoOptions(t *testing.T) {
	r := newTestRegistry()

	invoked := false
	fallback := func(params fcif.ChannelParams) (fcif.Strategy, error) {
		invoked = true
		return NewMaxStrategy(params)
	}

	s, err := r.Select(testParams(""), fallback)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.True(t, invoked)
}

func TestRegistry_SelectMax(t *testing.T) {
	r := newTestRegistry()

	s, err := r.Select(testParams("max"), nil)
	require.NoError(t, err)
	assert.IsType(t, &maxStrategy{}, s)
}

func TestRegistry_SelectMin(t *testing.T) {
	r := newTestRegistry()

	s, err := r.Select(testParams("min"), nil)
	require.NoError(t, err)
	assert.IsType(t, &minStrategy{}, s)
}

func TestRegistry_SelectTagged(t *testing.T) {
	r := newTestRegistry()

	s, err := r.Select(testParams("min,g:7"), nil)
	require.NoError(t, err)

	ts, ok := s.(*taggedStrategy)
	require.True(t, ok)
	assert.EqualValues(t, 7, ts.receiverTag)
}

func TestRegistry_SelectErrors(t *testing.T) {
	r := newTestRegistry()

	// 配置串存在但策略名为空
	_, err := r.Select(testParams(","), nil)
	assert.Error(t, err)

	// min 的名字必须精确匹配
	_, err = r.Select(testParams("minimum"), nil)
	assert.ErrorIs(t, err, fcif.ErrInvalidOptions)

	_, err = r.Select(testParams("max,x:1"), nil)
	assert.ErrorIs(t, err, fcif.ErrInvalidOptions)
}

// ============================================================================
//                              超时决议测试
// ============================================================================

// 全局配置超时优先于策略族默认值
func TestRegistry_ConfigTimeoutOverride(t *testing.T) {
	cfg := config.DefaultFlowControlConfig()
	cfg.ReceiverTimeout = 250 * time.Millisecond
	r := NewRegistry(cfg)

	s, err := r.Select(testParams("min"), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(250_000_000), s.(*minStrategy).timeoutNs)
}

// 每通道 t: 配置优先于全局配置
func TestRegistry_PerChannelTimeoutWins(t *testing.T) {
	cfg := config.DefaultFlowControlConfig()
	cfg.ReceiverTimeout = 250 * time.Millisecond
	r := NewRegistry(cfg)

	s, err := r.Select(testParams("min,g:7,t:1s"), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1_000_000_000), s.(*taggedStrategy).timeoutNs)
}
