package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"

	"github.com/reet-571099/Team6-272Project/application/services"
	"github.com/reet-571099/Team6-272Project/channel_utils"
	"github.com/reet-571099/Team6-272Project/config"
	"github.com/reet-571099/Team6-272Project/infrastructure/adapters"
	"github.com/reet-571099/Team6-272Project/infrastructure/gin_interface/controllers"
)

func main() {
	_ = godotenv.Load()

	awsConfig, err := config.GetAWSConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get aws config")
	}

	triggerConfig, err := config.GetTriggerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get trigger config")
	}

	consumerConfig, err := config.GetConsumerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get consumer config")
	}

	opsConfig := config.GetOpsConfig()

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(16, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	sess := session.Must(session.NewSession(&aws.Config{
		Region: aws.String(awsConfig.Region),
	}))
	sqsClient := sqs.New(sess)

	uploadEventsQueue := adapters.NewSQSMessageQueue(sqsClient, triggerConfig.UploadEventsQueueURL, consumerConfig, zeroLogger)
	deadLetterQueue := adapters.NewSQSMessagePublisher(sqsClient, triggerConfig.UploadEventsDLQURL, zeroLogger)
	transcriptionQueue := adapters.NewSQSMessagePublisher(sqsClient, triggerConfig.TranscriptionQueueURL, zeroLogger)

	relay := services.NewUploadEventRelay(zeroLogger, transcriptionQueue, awsConfig.Region)
	consumer := services.NewQueueConsumer(zeroLogger, uploadEventsQueue, deadLetterQueue, relay,
		services.ConsumerOptions{MaxReceives: consumerConfig.MaxReceives})

	opsController := controllers.NewOpsController(zeroLogger)

	router := gin.Default()
	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}
	opsController.RegisterRoutes(router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	err = workerPool.Submit(func() {
		serverErr <- router.Run(opsConfig.Addr)
		close(serverErr)
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start ops server")
	}

	consumerErr := make(chan error, 1)
	err = workerPool.Submit(func() {
		opsController.MarkReady()
		consumerErr <- consumer.Run(ctx)
		close(consumerErr)
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start consumer")
	}

	merged, err := channel_utils.MergeChannels[error](workerPool, serverErr, consumerErr)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to merge error channels")
	}

	for {
		select {
		case <-ctx.Done():
			zeroLogger.Info("Shutdown signal received, stopping trigger service")
			return
		case err, ok := <-merged:
			if !ok {
				return
			}
			if err != nil {
				log.Fatal().Err(err).Msg("Trigger service failed")
			}
		}
	}
}
