package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
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

	transcriberConfig, err := config.GetTranscriberConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get transcriber config")
	}

	deepgramConfig, err := config.GetDeepgramConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get deepgram config")
	}

	s3Config, err := config.GetS3Config()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get s3 config")
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
	s3Client := s3.New(sess)

	transcriptionQueue := adapters.NewSQSMessageQueue(sqsClient, transcriberConfig.TranscriptionQueueURL, consumerConfig, zeroLogger)
	deadLetterQueue := adapters.NewSQSMessagePublisher(sqsClient, transcriberConfig.TranscriptionDLQURL, zeroLogger)
	storyQueue := adapters.NewSQSMessagePublisher(sqsClient, transcriberConfig.StoryQueueURL, zeroLogger)

	contentFetcher := adapters.NewContentFetcher(zeroLogger)
	transcriber := adapters.NewDeepgramTranscriber(contentFetcher, deepgramConfig, zeroLogger)
	transcriptStore := adapters.NewS3TranscriptStore(s3Client, s3Config, zeroLogger)

	processor := services.NewTranscriptionProcessor(zeroLogger, transcriber, transcriptStore,
		storyQueue, transcriberConfig.ScratchDir)
	consumer := services.NewQueueConsumer(zeroLogger, transcriptionQueue, deadLetterQueue, processor,
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
			zeroLogger.Info("Shutdown signal received, stopping transcriber service")
			return
		case err, ok := <-merged:
			if !ok {
				return
			}
			if err != nil {
				log.Fatal().Err(err).Msg("Transcriber service failed")
			}
		}
	}
}
