package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jellydator/ttlcache/v3"
	"go.uber.org/zap"

	"github.com/crutrack/RoomTracker/pkg/model"
)

const (
	ListenAddr  = ":8080"
	ScheduleTTL = 2 * time.Hour
)

var (
	logger    *zap.Logger
	schedules *ttlcache.Cache[string, *model.SlotSet]
)

func main() {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	schedules = ttlcache.New(
		ttlcache.WithTTL[string, *model.SlotSet](ScheduleTTL),
	)
	go schedules.Start()

	r := gin.Default()

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	r.POST("/schedule", handlePostSchedule)
	r.GET("/schedule/:id/rooms", handleGetRooms)
	r.GET("/schedule/:id/free", handleGetFreeSlots)
	r.GET("/schedule/:id/available", handleGetAvailableRooms)
	r.GET("/schedule/:id/conflicts", handleGetConflicts)
	r.GET("/schedule/:id/stats", handleGetStats)
	r.GET("/schedule/:id/ranking", handleGetRanking)
	r.GET("/schedule/:id/ics", handleGetICS)
	r.GET("/schedule/:id/events", handleGetEvents)

	logger.Info("listening", zap.String("addr", ListenAddr))
	if err := r.Run(ListenAddr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
