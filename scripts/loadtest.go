//go:build ignore

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

const baseURL = "http://localhost:8080"

var searchCorridors = [][2]string{
	{"Mumbai", "Pune"},
	{"Pune", "Mumbai"},
	{"Mumbai", "Nashik"},
	{"Pune", "Nashik"},
	{"Pune", "Mahabaleshwar"},
}

type Stats struct {
	TotalRequests   int64
	SuccessRequests int64
	FailedRequests  int64
	TotalLatency    int64
	MinLatency      int64
	MaxLatency      int64
}

func main() {
	rand.Seed(time.Now().UnixNano())

	fmt.Println("LinkLift Load Test")
	fmt.Println("==================")

	fmt.Println("\n1. Creating test data...")
	userIDs := createTestData(20)
	if len(userIDs) == 0 {
		log.Fatal("Failed to create test data")
	}
	fmt.Printf("Created %d users\n", len(userIDs))

	fmt.Println("\n2. Publishing rides (100 rides, 10 concurrent)...")
	stats := testPublishRides(userIDs, 100, 10)
	printStats("Publish Rides", stats)

	fmt.Println("\n3. Testing search throughput (1000 searches, 50 concurrent)...")
	stats = testSearches(userIDs, 1000, 50)
	printStats("Ride Search", stats)

	fmt.Println("\n4. Mixed load (30 seconds)...")
	stats = testMixedLoad(userIDs, 30*time.Second, 20)
	printStats("Mixed Load", stats)
}

func createTestData(n int) []string {
	userIDs := make([]string, 0, n)
	for i := 0; i < n; i++ {
		body := map[string]interface{}{
			"name":    fmt.Sprintf("Load User %d", i),
			"email":   fmt.Sprintf("loadtest%d-%d@linklift.in", time.Now().UnixNano(), i),
			"year":    "2024",
			"college": "COEP Pune",
		}
		resp, err := postJSON("/v1/users", "", body)
		if err != nil {
			continue
		}
		if id, ok := resp["id"].(string); ok {
			userIDs = append(userIDs, id)
		}
	}
	return userIDs
}

func testPublishRides(userIDs []string, total, concurrency int) *Stats {
	stats := newStats()
	jobs := make(chan int, total)
	for i := 0; i < total; i++ {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				c := searchCorridors[rand.Intn(len(searchCorridors))]
				departAt := time.Now().Add(time.Duration(2+rand.Intn(72)) * time.Hour)
				body := map[string]interface{}{
					"pickup_city":     c[0],
					"pickup_address":  c[0] + " station",
					"drop_city":       c[1],
					"drop_address":    c[1] + " station",
					"depart_date":     departAt.Format("2006-01-02"),
					"depart_time":     departAt.Format("15:04"),
					"capacity":        1 + rand.Intn(4),
					"cost_per_person": float64(100 + rand.Intn(400)),
					"car_model":       "Maruti Swift",
					"license_plate":   fmt.Sprintf("MH12AB%04d", rand.Intn(10000)),
				}
				userID := userIDs[rand.Intn(len(userIDs))]
				record(stats, func() error {
					_, err := postJSON("/v1/rides", userID, body)
					return err
				})
			}
		}()
	}
	wg.Wait()
	return stats
}

func testSearches(userIDs []string, total, concurrency int) *Stats {
	stats := newStats()
	jobs := make(chan int, total)
	for i := 0; i < total; i++ {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				doSearch(stats, userIDs)
			}
		}()
	}
	wg.Wait()
	return stats
}

func testMixedLoad(userIDs []string, duration time.Duration, concurrency int) *Stats {
	stats := newStats()
	deadline := time.Now().Add(duration)

	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(deadline) {
				switch rand.Intn(3) {
				case 0, 1:
					doSearch(stats, userIDs)
				case 2:
					userID := userIDs[rand.Intn(len(userIDs))]
					record(stats, func() error {
						return getJSON("/v1/rides/my-published", userID)
					})
				}
			}
		}()
	}
	wg.Wait()
	return stats
}

func doSearch(stats *Stats, userIDs []string) {
	c := searchCorridors[rand.Intn(len(searchCorridors))]
	body := map[string]interface{}{
		"pickup_city": c[0],
		"drop_city":   c[1],
		"date":        time.Now().Add(24 * time.Hour).Format("2006-01-02"),
		"passengers":  1 + rand.Intn(3),
	}
	userID := userIDs[rand.Intn(len(userIDs))]
	record(stats, func() error {
		_, err := postJSON("/v1/rides/search", userID, body)
		return err
	})
}

func newStats() *Stats {
	return &Stats{MinLatency: int64(^uint64(0) >> 1)}
}

func record(stats *Stats, fn func() error) {
	start := time.Now()
	err := fn()
	latency := time.Since(start).Microseconds()

	atomic.AddInt64(&stats.TotalRequests, 1)
	atomic.AddInt64(&stats.TotalLatency, latency)
	if err != nil {
		atomic.AddInt64(&stats.FailedRequests, 1)
	} else {
		atomic.AddInt64(&stats.SuccessRequests, 1)
	}

	for {
		min := atomic.LoadInt64(&stats.MinLatency)
		if latency >= min || atomic.CompareAndSwapInt64(&stats.MinLatency, min, latency) {
			break
		}
	}
	for {
		max := atomic.LoadInt64(&stats.MaxLatency)
		if latency <= max || atomic.CompareAndSwapInt64(&stats.MaxLatency, max, latency) {
			break
		}
	}
}

func postJSON(path, userID string, body interface{}) (map[string]interface{}, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(data))
	}

	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func getJSON(path, userID string) error {
	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-User-ID", userID)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}

func printStats(name string, stats *Stats) {
	total := atomic.LoadInt64(&stats.TotalRequests)
	if total == 0 {
		fmt.Printf("%s: no requests made\n", name)
		return
	}

	avgLatency := atomic.LoadInt64(&stats.TotalLatency) / total
	fmt.Printf("\n%s Results:\n", name)
	fmt.Printf("  Total:    %d\n", total)
	fmt.Printf("  Success:  %d (%.1f%%)\n", stats.SuccessRequests, float64(stats.SuccessRequests)/float64(total)*100)
	fmt.Printf("  Failed:   %d\n", stats.FailedRequests)
	fmt.Printf("  Latency:  avg=%.2fms min=%.2fms max=%.2fms\n",
		float64(avgLatency)/1000, float64(stats.MinLatency)/1000, float64(stats.MaxLatency)/1000)
}
