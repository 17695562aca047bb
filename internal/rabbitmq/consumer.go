package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/calculations-api/internal/lib/sl"
)

// Consume читает сообщения из очереди и передаёт тело каждого в handler.
// Успешно обработанные сообщения подтверждаются, ошибочные возвращаются
// в очередь. Завершается при отмене контекста или закрытии канала.
func Consume(ctx context.Context, ch *amqp.Channel, queue string, log *slog.Logger, handler func([]byte) error) error {
	const op = "rabbitmq.Consume"

	msgs, err := ch.Consume(
		queue,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := handler(d.Body); err != nil {
				log.Error("failed to handle message", sl.Op(op), sl.Err(err))
				if nackErr := d.Nack(false, true); nackErr != nil {
					log.Error("failed to nack message", sl.Op(op), sl.Err(nackErr))
				}
				continue
			}
			if ackErr := d.Ack(false); ackErr != nil {
				log.Error("failed to ack message", sl.Op(op), sl.Err(ackErr))
			}
		}
	}
}
