package config

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitConnection/RabbitChannel are nil until services.InitRabbitMQ
// succeeds. With a nil RabbitChannel, services.PublishCrawlEvent and
// PublishStageEvent drop events, and the run-events websocket replies
// with an error; there is no in-process event delivery.
var (
	RabbitConnection *amqp.Connection
	RabbitChannel    *amqp.Channel
	ExchangeName     = "seoaudit_events"
)