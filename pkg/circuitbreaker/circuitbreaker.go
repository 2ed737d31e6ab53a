// Package circuitbreaker 熔断器
//
// 用于保护对外部依赖(消息队列)的调用:依赖故障时快速失败,不拖慢用户请求
//
//	CLOSED ──(ReadyToTrip)──▶ OPEN ──(Timeout到期)──▶ HALF_OPEN
//	   ▲                                              │
//	   └──────────────(探测成功)──────────────────────┘
//	                  (探测失败)──▶ OPEN
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	StateClosed   State = iota // 正常放行,统计失败
	StateOpen                  // 快速失败,等待Timeout
	StateHalfOpen              // 放行少量探测请求
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// Config 熔断器配置
type Config struct {
	// MaxRequests 半开状态下允许的探测请求数
	MaxRequests uint32

	// Interval 关闭状态下的统计窗口,到期后清零计数
	Interval time.Duration

	// Timeout 打开状态持续时间,到期后进入半开
	Timeout time.Duration

	// ReadyToTrip 关闭状态下每次失败后调用,返回true时打开熔断器
	ReadyToTrip func(counts Counts) bool
}

// DefaultConfig 事件发布使用的默认配置
// 连续失败5次熔断,30秒后探测
func DefaultConfig() Config {
	return Config{
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
}

// Counts 当前窗口内的统计
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

// FailureRate 失败率
func (c Counts) FailureRate() float64 {
	if c.Requests == 0 {
		return 0
	}
	return float64(c.TotalFailures) / float64(c.Requests)
}

func (c *Counts) onSuccess() {
	c.TotalSuccesses++
	c.ConsecutiveSuccesses++
	c.ConsecutiveFailures = 0
}

func (c *Counts) onFailure() {
	c.TotalFailures++
	c.ConsecutiveFailures++
	c.ConsecutiveSuccesses = 0
}

// StateChangeFunc 状态变化回调(在锁内调用,不要在回调里访问熔断器)
type StateChangeFunc func(name string, from, to State)

// CircuitBreaker 熔断器
type CircuitBreaker struct {
	name   string
	cfg    Config
	now    func() time.Time
	notify StateChangeFunc

	mu         sync.Mutex
	state      State
	generation uint64 // 每次状态切换递增,用于丢弃过期的请求结果
	counts     Counts
	expiry     time.Time
}

// ErrOpenState 熔断器打开(或半开探测名额已满)
var ErrOpenState = errors.New("circuit breaker is open")

// NewCircuitBreaker 创建熔断器
// 未设置ReadyToTrip时使用DefaultConfig的策略
func NewCircuitBreaker(name string, cfg Config) *CircuitBreaker {
	if cfg.ReadyToTrip == nil {
		cfg.ReadyToTrip = DefaultConfig().ReadyToTrip
	}
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = 1
	}
	cb := &CircuitBreaker{
		name:   name,
		cfg:    cfg,
		now:    time.Now,
		notify: func(string, State, State) {},
	}
	cb.expiry = cb.windowEnd(cb.now())
	return cb
}

// windowEnd 统计窗口结束时间,Interval<=0表示不按时间清零
func (cb *CircuitBreaker) windowEnd(now time.Time) time.Time {
	if cb.cfg.Interval <= 0 {
		return time.Time{}
	}
	return now.Add(cb.cfg.Interval)
}

// Name 熔断器名称
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// OnStateChange 注册状态变化回调(用于更新metrics和日志)
func (cb *CircuitBreaker) OnStateChange(fn StateChangeFunc) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.notify = fn
}

// Execute 在熔断器保护下执行fn
//
// 学习要点:
// 1. 打开状态直接返回ErrOpenState,fn不会被调用
// 2. 调用方取消(context.Canceled)不算依赖故障,不计入失败
// 3. 请求执行期间状态如果已经切换,结果被丢弃(generation不匹配)
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	generation, err := cb.beforeRequest()
	if err != nil {
		return err
	}

	err = fn(ctx)

	if errors.Is(err, context.Canceled) {
		cb.afterRequest(generation, nil)
		return err
	}
	cb.afterRequest(generation, &err)
	return err
}

func (cb *CircuitBreaker) beforeRequest() (uint64, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state, generation := cb.currentState(cb.now())
	switch {
	case state == StateOpen:
		return generation, ErrOpenState
	case state == StateHalfOpen && cb.counts.Requests >= cb.cfg.MaxRequests:
		return generation, ErrOpenState
	}

	cb.counts.Requests++
	return generation, nil
}

// afterRequest result为nil表示不统计本次结果
func (cb *CircuitBreaker) afterRequest(before uint64, result *error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := cb.now()
	state, generation := cb.currentState(now)
	if generation != before {
		return
	}

	if result == nil {
		// 不统计结果,但要归还半开状态的探测名额
		if cb.counts.Requests > 0 {
			cb.counts.Requests--
		}
		return
	}

	if *result == nil {
		cb.counts.onSuccess()
		if state == StateHalfOpen {
			cb.setState(StateClosed, now)
		}
		return
	}

	cb.counts.onFailure()
	switch state {
	case StateClosed:
		if cb.cfg.ReadyToTrip(cb.counts) {
			cb.setState(StateOpen, now)
		}
	case StateHalfOpen:
		cb.setState(StateOpen, now)
	}
}

func (cb *CircuitBreaker) currentState(now time.Time) (State, uint64) {
	switch cb.state {
	case StateClosed:
		if !cb.expiry.IsZero() && cb.expiry.Before(now) {
			cb.counts = Counts{}
			cb.expiry = cb.windowEnd(now)
		}
	case StateOpen:
		if cb.expiry.Before(now) {
			cb.setState(StateHalfOpen, now)
		}
	}
	return cb.state, cb.generation
}

func (cb *CircuitBreaker) setState(state State, now time.Time) {
	if cb.state == state {
		return
	}

	prev := cb.state
	cb.state = state
	cb.generation++
	cb.counts = Counts{}

	switch state {
	case StateClosed:
		cb.expiry = cb.windowEnd(now)
	case StateOpen:
		cb.expiry = now.Add(cb.cfg.Timeout)
	case StateHalfOpen:
		cb.expiry = time.Time{}
	}

	cb.notify(cb.name, prev, state)
}

// State 当前状态(会触发OPEN→HALF_OPEN的超时检查)
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	state, _ := cb.currentState(cb.now())
	return state
}

// Counts 当前窗口内的统计
func (cb *CircuitBreaker) Counts() Counts {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.counts
}
