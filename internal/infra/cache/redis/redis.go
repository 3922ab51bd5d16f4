package redisx

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// Состояние соединения. Переходы:
// connecting -> ready | error
// ready -> reconnecting (ошибка команды) | closed
// reconnecting -> ready | error
type ConnState int32

const (
	StateConnecting ConnState = iota
	StateReady
	StateReconnecting
	StateError
	StateClosed
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	case StateReconnecting:
		return "reconnecting"
	case StateError:
		return "error"
	case StateClosed:
		return "closed"
	}
	return fmt.Sprintf("unknown(%d)", int32(s))
}

type Config struct {
	Addr     string
	DB       int
	Password string

	DialTimeout   time.Duration // таймаут Connect/пинга при реконнекте
	OpTimeout     time.Duration // сокетный таймаут на команду
	MaxReconnects int           // попыток в фоновом цикле реконнекта
}

const (
	defaultDialTimeout   = 10 * time.Second
	defaultOpTimeout     = 30 * time.Second
	defaultMaxReconnects = 10

	reconnectStep = 200 * time.Millisecond
	reconnectCap  = 5 * time.Second
)

type Cache struct {
	rdb    *redis.Client
	logger *log.Logger
	cfg    Config

	state        atomic.Int32
	reconnecting atomic.Bool // не больше одного цикла реконнекта
}

func New(cfg Config, logger *log.Logger) *Cache {
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = defaultDialTimeout
	}
	if cfg.OpTimeout <= 0 {
		cfg.OpTimeout = defaultOpTimeout
	}
	if cfg.MaxReconnects <= 0 {
		cfg.MaxReconnects = defaultMaxReconnects
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		DB:       cfg.DB,
		Password: cfg.Password,

		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.OpTimeout,
		WriteTimeout: cfg.OpTimeout,
		// восстановлением владеет наш цикл реконнекта, а не клиент
		MaxRetries: -1,
	})

	c := &Cache{rdb: rdb, logger: logger, cfg: cfg}
	c.state.Store(int32(StateConnecting))
	return c
}

// State возвращает текущее состояние соединения.
func (c *Cache) State() ConnState { return ConnState(c.state.Load()) }

// IsConnected — готов ли стор принимать команды.
// Каждая операция проверяет флаг перед обращением к Redis.
func (c *Cache) IsConnected() bool { return c.State() == StateReady }

func (c *Cache) setState(s ConnState) {
	old := ConnState(c.state.Swap(int32(s)))
	if old != s {
		c.logger.Printf("state: %s -> %s", old, s)
	}
}

// Connect проверяет соединение пингом с жёстким таймаутом.
// Ошибка уходит вызывающему: на старте сервис без Redis падает громко.
func (c *Cache) Connect(ctx context.Context) error {
	c.setState(StateConnecting)

	ctx, cancel := context.WithTimeout(ctx, c.cfg.DialTimeout)
	defer cancel()

	if err := c.rdb.Ping(ctx).Err(); err != nil {
		c.setState(StateError)
		c.logger.Printf("connect %s failed: %v", c.cfg.Addr, err)
		return fmt.Errorf("redis connect %s: %w", c.cfg.Addr, err)
	}
	c.setState(StateReady)
	c.logger.Printf("connected to %s (db=%d)", c.cfg.Addr, c.cfg.DB)
	return nil
}

func (c *Cache) Ping(ctx context.Context) error {
	err := c.rdb.Ping(ctx).Err()
	if err != nil {
		c.logger.Printf("PING failed: %v", err)
	}
	return err
}

func (c *Cache) Close() {
	c.setState(StateClosed)
	if err := c.rdb.Close(); err != nil {
		c.logger.Printf("error while closing: %v", err)
		return
	}
	c.logger.Println("closed")
}

// fail фиксирует ошибку команды: лог, сброс готовности,
// запуск фонового реконнекта. Наверх ошибка не уходит —
// операции деградируют до пустых значений.
func (c *Cache) fail(op string, err error) {
	c.logger.Printf("%s: error: %v", op, err)
	if c.State() != StateReady {
		return
	}
	c.setState(StateReconnecting)
	if c.reconnecting.CompareAndSwap(false, true) {
		go c.reconnectLoop()
	}
}

// reconnectLoop пингует стор с растущей задержкой
// min(attempt*200ms, 5s), не более MaxReconnects попыток.
func (c *Cache) reconnectLoop() {
	defer c.reconnecting.Store(false)

	for attempt := 1; attempt <= c.cfg.MaxReconnects; attempt++ {
		if c.State() == StateClosed {
			return
		}

		delay := time.Duration(attempt) * reconnectStep
		if delay > reconnectCap {
			delay = reconnectCap
		}
		time.Sleep(delay)

		ctx, cancel := context.WithTimeout(context.Background(), c.cfg.DialTimeout)
		err := c.rdb.Ping(ctx).Err()
		cancel()

		if err == nil {
			c.setState(StateReady)
			c.logger.Printf("reconnected after %d attempt(s)", attempt)
			return
		}
		c.logger.Printf("reconnect attempt %d/%d failed: %v", attempt, c.cfg.MaxReconnects, err)
	}

	// исчерпали попытки — терминальное состояние до явного Connect
	if c.State() != StateClosed {
		c.setState(StateError)
		c.logger.Printf("giving up after %d reconnect attempts", c.cfg.MaxReconnects)
	}
}
