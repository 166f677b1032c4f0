package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	feedv1 "github.com/muhammadchandra19/market-depth/internal/domain/feed/v1"
)

func main() {
	var (
		brokers = flag.String("brokers", "localhost:9092", "Kafka broker addresses (comma-separated)")
		topic   = flag.String("topic", "mbo-events", "Kafka topic name")
		file    = flag.String("file", "", "MBO CSV file to replay (required)")
		delay   = flag.Duration("delay", 0, "Delay between records, 0 for full speed")
		limit   = flag.Int("limit", 0, "Stop after this many records, 0 for all")
	)
	flag.Parse()

	if *file == "" {
		flag.Usage()
		log.Fatal("missing -file")
	}

	input, err := os.Open(*file)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *file, err)
	}
	defer input.Close()

	// Create Kafka writer
	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(*brokers, ",")...),
		Topic:        *topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	defer writer.Close()

	ctx := context.Background()

	log.Printf("Replaying %s to Kafka broker: %s, topic: %s", *file, *brokers, *topic)

	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	sent := 0
	skipped := 0
	actions := make(map[string]int)
	header := true
	for scanner.Scan() {
		if header {
			header = false
			continue
		}
		if *limit > 0 && sent >= *limit {
			break
		}

		record, err := feedv1.ParseMBORecord(scanner.Text())
		if err != nil {
			skipped++
			log.Printf("Skipping record %d: %v", sent+skipped, err)
			continue
		}

		payload, err := json.Marshal(record)
		if err != nil {
			skipped++
			continue
		}

		msg := kafka.Message{
			Key:   []byte(record.Symbol),
			Value: payload,
			Time:  time.Now(),
		}
		if err := writer.WriteMessages(ctx, msg); err != nil {
			log.Fatalf("Failed to send record %d: %v", sent+1, err)
		}

		sent++
		actions[record.Action.String()]++
		if sent%1000 == 0 {
			log.Printf("Sent %d records, at sequence %d", sent, record.Sequence)
		}

		if *delay > 0 {
			time.Sleep(*delay)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("Failed reading %s: %v", *file, err)
	}

	log.Printf("--- Summary ---")
	log.Printf("Records Sent: %d", sent)
	log.Printf("Records Skipped: %d", skipped)
	for action, count := range actions {
		log.Printf("Action %s: %d", action, count)
	}
}
