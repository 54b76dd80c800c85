package main

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
	"go.uber.org/zap"

	"github.com/crutrack/RoomTracker/internal/cruio"
	"github.com/crutrack/RoomTracker/internal/ical"
	"github.com/crutrack/RoomTracker/internal/rooms"
	"github.com/crutrack/RoomTracker/pkg/model"
)

const dateLayout = "2006-01-02"

// handlePostSchedule accepts one or more CRU files under the "cru" form
// field, parses them into one schedule and caches it.
func handlePostSchedule(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.String(http.StatusBadRequest, err.Error())
		return
	}
	if len(form.File["cru"]) == 0 {
		ctx.String(http.StatusBadRequest, "missing cru file(s)")
		return
	}

	set := model.EmptySlotSet()
	var diags []cruio.Diagnostic
	for _, header := range form.File["cru"] {
		f, err := header.Open()
		if err != nil {
			ctx.String(http.StatusBadRequest, err.Error())
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			ctx.String(http.StatusBadRequest, err.Error())
			return
		}
		sub, d := cruio.Parse(string(data))
		set.AddAll(sub)
		diags = append(diags, d...)
	}

	id := uuid.NewString()
	schedules.Set(id, set, ttlcache.DefaultTTL)
	logger.Info("schedule parsed",
		zap.String("id", id),
		zap.Int("files", len(form.File["cru"])),
		zap.Int("slots", set.Len()),
		zap.Int("diagnostics", len(diags)))

	ctx.JSON(http.StatusOK, gin.H{
		"id":          id,
		"slots":       set.Len(),
		"diagnostics": diags,
	})
}

func scheduleByID(ctx *gin.Context) (*model.SlotSet, bool) {
	item := schedules.Get(ctx.Param("id"))
	if item == nil {
		ctx.Status(http.StatusNotFound)
		return nil, false
	}
	return item.Value(), true
}

func handleGetRooms(ctx *gin.Context) {
	set, ok := scheduleByID(ctx)
	if !ok {
		return
	}

	var infos []rooms.RoomInfo
	if course := ctx.Query("course"); course != "" {
		infos = rooms.ForCourse(set, course)
	} else {
		infos = rooms.Summary(set)
	}
	ctx.JSON(http.StatusOK, gin.H{"rooms": infos})
}

func handleGetFreeSlots(ctx *gin.Context) {
	set, ok := scheduleByID(ctx)
	if !ok {
		return
	}
	room := ctx.Query("room")
	if room == "" {
		ctx.String(http.StatusBadRequest, "missing room parameter")
		return
	}

	free := rooms.FreeIntervals(set, room)
	out := make(map[string][]string, model.NumDays)
	for day := model.Monday; day <= model.Friday; day++ {
		intervals := []string{}
		for _, iv := range free[day] {
			intervals = append(intervals, iv.String())
		}
		out[day.Code()] = intervals
	}
	ctx.JSON(http.StatusOK, gin.H{"room": room, "free": out})
}

func handleGetAvailableRooms(ctx *gin.Context) {
	set, ok := scheduleByID(ctx)
	if !ok {
		return
	}

	day, ok := model.ParseDay(ctx.Query("day"))
	if !ok {
		ctx.String(http.StatusBadRequest, "invalid day code")
		return
	}
	start, err := model.ParseClock(ctx.Query("start"))
	if err != nil {
		ctx.String(http.StatusBadRequest, err.Error())
		return
	}
	end, err := model.ParseClock(ctx.Query("end"))
	if err != nil {
		ctx.String(http.StatusBadRequest, err.Error())
		return
	}
	if start >= end {
		ctx.String(http.StatusBadRequest, "start must be before end")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"day":   day.Code(),
		"rooms": rooms.FreeRoomsAt(set, day, start, end),
	})
}

func handleGetConflicts(ctx *gin.Context) {
	set, ok := scheduleByID(ctx)
	if !ok {
		return
	}
	pairs := rooms.Conflicts(set)
	valid, report := rooms.ConflictReport(set)
	ctx.JSON(http.StatusOK, gin.H{
		"valid":     valid,
		"report":    report,
		"conflicts": pairs,
	})
}

func handleGetStats(ctx *gin.Context) {
	set, ok := scheduleByID(ctx)
	if !ok {
		return
	}
	stats := rooms.UsageStats(set)
	ctx.JSON(http.StatusOK, gin.H{
		"rooms":   stats,
		"average": rooms.AverageRate(stats),
	})
}

func handleGetRanking(ctx *gin.Context) {
	set, ok := scheduleByID(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"ranking": rooms.RankByCapacity(set)})
}

func exportOptions(ctx *gin.Context) (ical.Options, bool) {
	var opts ical.Options
	var err error
	if opts.PeriodStart, err = time.Parse(dateLayout, ctx.Query("from")); err != nil {
		ctx.String(http.StatusBadRequest, "invalid from date: %v", err)
		return opts, false
	}
	if opts.PeriodEnd, err = time.Parse(dateLayout, ctx.Query("to")); err != nil {
		ctx.String(http.StatusBadRequest, "invalid to date: %v", err)
		return opts, false
	}
	if courses := ctx.Query("courses"); courses != "" {
		opts.Courses = strings.Split(courses, ",")
	}
	opts.UIDDomain = ctx.Query("domain")
	return opts, true
}

func handleGetICS(ctx *gin.Context) {
	set, ok := scheduleByID(ctx)
	if !ok {
		return
	}
	opts, ok := exportOptions(ctx)
	if !ok {
		return
	}

	out, err := ical.Export(set, opts)
	if err != nil {
		ctx.String(http.StatusBadRequest, err.Error())
		return
	}
	ctx.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(out))
}

// handleGetEvents runs the same export and hands back the events as JSON.
func handleGetEvents(ctx *gin.Context) {
	set, ok := scheduleByID(ctx)
	if !ok {
		return
	}
	opts, ok := exportOptions(ctx)
	if !ok {
		return
	}

	out, err := ical.Export(set, opts)
	if err != nil {
		ctx.String(http.StatusBadRequest, err.Error())
		return
	}
	events, err := ical.ReadEvents(out)
	if err != nil {
		logger.Error("reading back export", zap.Error(err))
		ctx.Status(http.StatusInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"events": events})
}
