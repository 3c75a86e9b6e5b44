package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-payroll/internal/events"
	"go-payroll/internal/payroll"
)

// ConsumeSalaryReleased renders payslips for released records. The render
// reads only from the record's frozen snapshots, so a replayed message
// always produces the same document.
func ConsumeSalaryReleased(
	ctx context.Context,
	reader *kafkago.Reader,
	payrollService payroll.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.salary_released")
	log.Info("salary released consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("salary released consumer stopped")
				return
			}
			log.Error("fetch salary released message failed", zap.Error(err))
			continue
		}

		var event events.SalaryReleasedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode salary released event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = payrollService.GeneratePayslip(ctx, event.PayrollID)
		if err != nil {
			log.Error("generate payslip failed",
				zap.String("payroll_id", event.PayrollID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit salary released message failed", zap.Error(err))
			continue
		}

		log.Info("payslip generated for released salary",
			zap.String("payroll_id", event.PayrollID),
		)
	}
}
