package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xiebiao/wizardshop/internal/domain/session"
	"github.com/xiebiao/wizardshop/pkg/mq"
)

type eventsFlags struct {
	queue string
	keys  []string
}

func newEventsCmd(root *rootFlags) *cobra.Command {
	flags := &eventsFlags{}

	cmd := &cobra.Command{
		Use:   "events",
		Short: "实时查看会话事件(RabbitMQ)",
		Example: `  wizardshop events
  wizardshop events --keys cart.toggled --keys session.created`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap(root)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, flags.queue, flags.keys, logger)
			if err != nil {
				return err
			}
			defer consumer.Close()

			return consumer.Consume(ctx, printEvent(cmd.OutOrStdout(), logger))
		},
	}

	cmd.Flags().StringVar(&flags.queue, "queue", "", "队列名,为空时使用临时队列")
	cmd.Flags().StringSliceVar(&flags.keys, "keys", []string{"#"}, "订阅的路由键(支持*和#通配符)")

	return cmd
}

// printEvent 每条事件输出一行
// 无法解析的消息只记录日志,不重新入队
func printEvent(w io.Writer, logger *zap.Logger) func(ctx context.Context, msg mq.Message) error {
	return func(ctx context.Context, msg mq.Message) error {
		var e session.Event
		if err := json.Unmarshal(msg.Body, &e); err != nil {
			logger.Warn("无法解析的事件", zap.String("routing_key", msg.RoutingKey), zap.Error(err))
			return nil
		}

		line := fmt.Sprintf("%s  %-18s session=%s", e.OccurredAt.Format("15:04:05"), e.Type, e.SessionID)
		if e.BookID != "" {
			line += " book=" + e.BookID
		}
		if e.Type == session.EventCartToggled {
			line += fmt.Sprintf(" in_cart=%t", e.InCart)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return errors.Join(errors.New("输出事件失败"), err)
		}
		return nil
	}
}
