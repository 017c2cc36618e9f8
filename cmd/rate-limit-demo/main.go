package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sync"
	"time"

	"kolan-weather/datasource"
	"kolan-weather/models"
)

// MockGeocoder simulates upstream latency and counts calls
type MockGeocoder struct {
	callCount int
	mutex     sync.Mutex
	latency   time.Duration
}

func NewMockGeocoder(latency time.Duration) *MockGeocoder {
	return &MockGeocoder{latency: latency}
}

func (m *MockGeocoder) Search(ctx context.Context, q datasource.SearchQuery) ([]models.Place, error) {
	m.mutex.Lock()
	m.callCount++
	currentCount := m.callCount
	m.mutex.Unlock()

	fmt.Printf("%s - Processing search #%d for %s\n", time.Now().Format("15:04:05.000"), currentCount, q.Name)

	select {
	case <-time.After(m.latency):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return []models.Place{{ID: int64(currentCount), Name: q.Name, Latitude: 35.69, Longitude: 51.42}}, nil
}

func (m *MockGeocoder) Name() string {
	return "MockGeocoder"
}

func (m *MockGeocoder) CallCount() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.callCount
}

func main() {
	requestsPerSecond := flag.Float64("rps", 1.0, "Rate limit in requests per second")
	burstSize := flag.Int("burst", 3, "Maximum burst size")
	totalRequests := flag.Int("requests", 10, "Total number of requests to make")
	concurrentRequests := flag.Int("concurrent", 5, "Number of concurrent requests")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mock := NewMockGeocoder(200 * time.Millisecond)
	limited := datasource.NewRateLimitedGeocoder(mock, *requestsPerSecond, *burstSize)

	fmt.Printf("Testing rate limiter with:\n")
	fmt.Printf("- Rate limit: %.2f requests/second\n", *requestsPerSecond)
	fmt.Printf("- Burst size: %d\n", *burstSize)
	fmt.Printf("- Total requests: %d\n", *totalRequests)
	fmt.Printf("- Concurrent workers: %d\n", *concurrentRequests)

	startTime := time.Now()
	var wg sync.WaitGroup

	for i := 0; i < *concurrentRequests; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			requestsPerWorker := *totalRequests / *concurrentRequests
			if workerID < *totalRequests%*concurrentRequests {
				requestsPerWorker++
			}

			for j := 0; j < requestsPerWorker; j++ {
				query := datasource.SearchQuery{Name: fmt.Sprintf("Place-%d-%d", workerID, j), Count: 5}
				before := time.Now()
				if _, err := limited.Search(ctx, query); err != nil {
					log.Printf("Worker %d - Request %d failed: %v", workerID, j, err)
				} else {
					log.Printf("Worker %d - Request %d completed in %v", workerID, j, time.Since(before))
				}
			}
		}(i)
	}
	wg.Wait()

	totalTime := time.Since(startTime)
	actualRPS := float64(*totalRequests) / totalTime.Seconds()

	fmt.Println("\nTest completed!")
	fmt.Printf("Total time: %.2f seconds\n", totalTime.Seconds())
	fmt.Printf("Actual requests per second: %.2f\n", actualRPS)
	fmt.Printf("Total requests processed: %d\n", mock.CallCount())

	expectedMinTime := max(float64(*totalRequests-*burstSize) / *requestsPerSecond, 0)
	fmt.Printf("Expected minimum time (theoretical): %.2f seconds\n", expectedMinTime)

	if actualRPS > *requestsPerSecond*1.5 && *totalRequests > *burstSize {
		fmt.Println("\nWARNING: Actual RPS significantly higher than configured rate limit!")
	} else {
		fmt.Println("\nRate limiting appears to be working correctly.")
	}
}
