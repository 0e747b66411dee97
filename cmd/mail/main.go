package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"

	"github.com/healing-forest/reservation/backend/internal/config"
)

func main() {
	/**********************************************
	 * logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * 설정
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("설정을 읽을 수 없습니다", slog.String("error", err.Error()))
		return
	}

	r, err := newRenderer("./templates", cfg.Email.SMTP.Username)
	if err != nil {
		logger.Error("메일 템플릿을 읽을 수 없습니다", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * 메일 클라이언트
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("메일 클라이언트를 만들 수 없습니다", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	// 시작할 때 SMTP 서버에 한 번 연결해 본다
	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("메일 서버에 연결할 수 없습니다", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * RabbitMQ
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("RabbitMQ 에 연결할 수 없습니다", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("채널을 열 수 없습니다", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		cfg.RabbitMQ.Queue,
		true,  // durable
		false, // 소비자가 없어도 지우지 않는다
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		logger.Error("큐를 선언할 수 없습니다", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",    // consumer 이름은 RabbitMQ 가 정한다
		false, // 직접 ack 한다
		false,
		false, // no-local 은 RabbitMQ 가 지원하지 않는다
		false,
		nil,
	)
	if err != nil {
		logger.Error("메시지를 받을 수 없습니다", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					logger.Error("메시지 채널이 닫혔습니다")
					return
				}
				logger.Info("메시지 수신", slog.Uint64("deliveryTag", msg.DeliveryTag))

				m, err := r.render(msg.Body)
				if err != nil {
					logger.Error("메일을 만들 수 없습니다", slog.String("error", err.Error()))
					// 형식이 잘못된 메시지는 다시 넣지 않는다
					_ = msg.Nack(false, !errors.Is(err, errBadMessage))
					continue
				}

				if err := client.DialAndSend(m); err != nil {
					logger.Error("메일 발송 실패", slog.String("error", err.Error()))
					_ = msg.Nack(false, true)
					continue
				}

				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("메시지 대기 중 (CTRL+C 로 종료)")
	<-sigChan

	slog.Info("mail worker 종료 중")
	cancel()
	wg.Wait()
	slog.Info("mail worker 종료 완료")
}
