package statistics

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/shauncritzer/rewired/app/models"
	"github.com/shauncritzer/rewired/internal/pkg/cache"
	"github.com/shauncritzer/rewired/internal/pkg/database"
)

const (
	CacheKeySubscribers = "statistics:subscribers:total"
	CacheKeyDownloads   = "statistics:downloads:total"
	CacheKeyOrders      = "statistics:orders:completed"
	CacheExpiration     = 30 * time.Minute
)

// StatisticsData feeds the admin dashboard header cards.
type StatisticsData struct {
	TotalSubscribers int
	TotalDownloads   int
	CompletedOrders  int
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the cached numbers are due for a refresh.
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cache when the interval has passed.
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("failed to update statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// UpdateStatisticsCache recounts everything and stores the numbers in Redis.
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var subscribers int64
	if err := db.Model(&models.EmailSubscriber{}).Count(&subscribers).Error; err != nil {
		return err
	}

	var downloads int64
	if err := db.Model(&models.LeadMagnetDownload{}).Count(&downloads).Error; err != nil {
		return err
	}

	var orders int64
	if err := db.Model(&models.Order{}).Where("status = ?", models.OrderStatusCompleted).Count(&orders).Error; err != nil {
		return err
	}

	if err := cache.Set(CacheKeySubscribers, strconv.FormatInt(subscribers, 10), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyDownloads, strconv.FormatInt(downloads, 10), CacheExpiration); err != nil {
		return err
	}
	return cache.Set(CacheKeyOrders, strconv.FormatInt(orders, 10), CacheExpiration)
}

func cachedCount(key string, recount func() (int64, error)) int {
	if val, err := cache.Get(key); err == nil {
		if count, perr := strconv.ParseInt(val, 10, 64); perr == nil {
			return int(count)
		}
	}

	count, err := recount()
	if err != nil {
		log.Printf("statistics recount for %s failed: %v", key, err)
		return 0
	}
	if err := cache.Set(key, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
		log.Printf("failed to cache %s: %v", key, err)
	}
	return int(count)
}

// GetTotalSubscribers returns the subscriber count from cache or database.
func GetTotalSubscribers() int {
	return cachedCount(CacheKeySubscribers, func() (int64, error) {
		var count int64
		err := database.GetDB().Model(&models.EmailSubscriber{}).Count(&count).Error
		return count, err
	})
}

// GetTotalDownloads returns the lead magnet download count from cache or database.
func GetTotalDownloads() int {
	return cachedCount(CacheKeyDownloads, func() (int64, error) {
		var count int64
		err := database.GetDB().Model(&models.LeadMagnetDownload{}).Count(&count).Error
		return count, err
	})
}

// GetCompletedOrders returns the paid order count from cache or database.
func GetCompletedOrders() int {
	return cachedCount(CacheKeyOrders, func() (int64, error) {
		var count int64
		err := database.GetDB().Model(&models.Order{}).
			Where("status = ?", models.OrderStatusCompleted).Count(&count).Error
		return count, err
	})
}

// GetStatisticsData returns all dashboard numbers, refreshing the cache if due.
func GetStatisticsData() StatisticsData {
	UpdateCacheIfNeeded()

	return StatisticsData{
		TotalSubscribers: GetTotalSubscribers(),
		TotalDownloads:   GetTotalDownloads(),
		CompletedOrders:  GetCompletedOrders(),
	}
}
