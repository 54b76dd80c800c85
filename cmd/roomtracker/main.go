package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/crutrack/RoomTracker/internal/cruio"
	"github.com/crutrack/RoomTracker/internal/ical"
	"github.com/crutrack/RoomTracker/internal/rooms"
	"github.com/crutrack/RoomTracker/pkg/model"
)

const dateLayout = "2006-01-02"

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: roomtracker <command> [options]

Commands:
  search-rooms    -db DIR COURSE          rooms a course is taught in
  room-capacity   FILE ROOM               maximum seats of a room
  free-slots      FILE ROOM               free time blocks per weekday
  available-rooms FILE DAY START END      rooms free for a window (day: L MA ME J V)
  check-conflicts FILE                    double-booked rooms
  usage-stats     FILE                    weekly occupancy per room
  rank-rooms      FILE                    distinct rooms per capacity
  export-csv      FILE OUT.csv            slots as CSV
  generate-ics    [options] FILE          iCalendar export`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "search-rooms":
		runSearchRooms(os.Args[2:])
	case "room-capacity":
		runRoomCapacity(os.Args[2:])
	case "free-slots":
		runFreeSlots(os.Args[2:])
	case "available-rooms":
		runAvailableRooms(os.Args[2:])
	case "check-conflicts":
		runCheckConflicts(os.Args[2:])
	case "usage-stats":
		runUsageStats(os.Args[2:])
	case "rank-rooms":
		runRankRooms(os.Args[2:])
	case "export-csv":
		runExportCSV(os.Args[2:])
	case "generate-ics":
		runGenerateICS(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func loadFileArg(path string) *model.SlotSet {
	set, diags, err := cruio.LoadFile(path)
	if err != nil {
		fatal("%v", err)
	}
	for _, d := range diags {
		if d.Kind == cruio.DiagBadSlotLine {
			fmt.Fprintf(os.Stderr, "skipped invalid slot line %d: %s\n", d.Line, d.Text)
		}
	}
	return set
}

func runSearchRooms(args []string) {
	fs := flag.NewFlagSet("search-rooms", flag.ExitOnError)
	db := fs.String("db", "./data", "database directory")
	fs.Parse(args)
	if fs.NArg() != 1 {
		usage()
	}
	course := fs.Arg(0)

	set, _, err := cruio.LoadDatabase(*db)
	if err != nil {
		fatal("%v", err)
	}

	infos := rooms.ForCourse(set, course)
	if len(infos) == 0 {
		fatal("Unknown course: %s", course)
	}
	fmt.Printf("Rooms for course %s:\n", course)
	for _, info := range infos {
		fmt.Printf("  %s - %d seats\n", info.Room, info.Capacity)
	}
}

func runRoomCapacity(args []string) {
	if len(args) != 2 {
		usage()
	}
	set := loadFileArg(args[0])

	capacity, found := rooms.Capacity(set, args[1])
	if !found {
		fatal("Room %q not found.", args[1])
	}
	fmt.Printf("Room %s seats %d\n", strings.ToUpper(args[1]), capacity)
}

func runFreeSlots(args []string) {
	if len(args) != 2 {
		usage()
	}
	set := loadFileArg(args[0])

	if _, found := rooms.Capacity(set, args[1]); !found {
		fatal("Room %q not found.", args[1])
	}

	fmt.Printf("Free slots for room %s:\n", strings.ToUpper(args[1]))
	free := rooms.FreeIntervals(set, args[1])
	for day := model.Monday; day <= model.Friday; day++ {
		intervals := free[day]
		if len(intervals) == 0 {
			fmt.Printf("  %-9s fully booked\n", day)
			continue
		}
		var parts []string
		for _, iv := range intervals {
			parts = append(parts, iv.String())
		}
		fmt.Printf("  %-9s %s\n", day, strings.Join(parts, ", "))
	}
}

func runAvailableRooms(args []string) {
	if len(args) != 4 {
		usage()
	}
	set := loadFileArg(args[0])

	day, ok := model.ParseDay(args[1])
	if !ok {
		fatal("invalid day code %q (want L, MA, ME, J or V)", args[1])
	}
	start, err := model.ParseClock(args[2])
	if err != nil {
		fatal("%v", err)
	}
	end, err := model.ParseClock(args[3])
	if err != nil {
		fatal("%v", err)
	}
	if start >= end {
		fatal("start %s must be before end %s", start, end)
	}

	free := rooms.FreeRoomsAt(set, day, start, end)
	if len(free) == 0 {
		fmt.Printf("No room free on %s %s-%s\n", day, start, end)
		return
	}
	fmt.Printf("Rooms free on %s %s-%s:\n", day, start, end)
	for _, room := range free {
		fmt.Printf("  %s\n", room)
	}
}

func runCheckConflicts(args []string) {
	if len(args) != 1 {
		usage()
	}
	set := loadFileArg(args[0])

	ok, report := rooms.ConflictReport(set)
	fmt.Print(report)
	if !ok {
		os.Exit(1)
	}
}

func runUsageStats(args []string) {
	if len(args) != 1 {
		usage()
	}
	set := loadFileArg(args[0])

	stats := rooms.UsageStats(set)
	if len(stats) == 0 {
		fatal("No slots found in file.")
	}
	fmt.Println("=== Room Occupancy Statistics ===")
	for _, u := range stats {
		fmt.Printf("%s: %.2f%% occupied\n", u.Room, u.Rate)
	}
	fmt.Printf("\nAverage occupancy rate: %.2f%%\n", rooms.AverageRate(stats))
}

func runRankRooms(args []string) {
	if len(args) != 1 {
		usage()
	}
	set := loadFileArg(args[0])

	ranks := rooms.RankByCapacity(set)
	if len(ranks) == 0 {
		fatal("No slots found in file.")
	}
	fmt.Println("=== Room Ranking by Capacity ===")
	for _, r := range ranks {
		fmt.Printf("%d seats: %d room(s)\n", r.Capacity, r.Rooms)
	}
}

func runExportCSV(args []string) {
	if len(args) != 2 {
		usage()
	}
	set := loadFileArg(args[0])
	if err := cruio.ExportSlots(set, args[1]); err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Wrote %d slots to %s\n", set.Len(), args[1])
}

func runGenerateICS(args []string) {
	fs := flag.NewFlagSet("generate-ics", flag.ExitOnError)
	output := fs.String("o", "./schedule.ics", "output path")
	courses := fs.String("courses", "", "comma-separated course codes to keep")
	from := fs.String("from", "", "period start (YYYY-MM-DD)")
	to := fs.String("to", "", "period end (YYYY-MM-DD)")
	domain := fs.String("domain", ical.DefaultUIDDomain, "UID domain")
	fs.Parse(args)
	if fs.NArg() != 1 {
		usage()
	}
	set := loadFileArg(fs.Arg(0))

	opts := ical.Options{UIDDomain: *domain}
	if *courses != "" {
		opts.Courses = strings.Split(*courses, ",")
	}
	var err error
	if opts.PeriodStart, err = time.Parse(dateLayout, *from); err != nil {
		fatal("invalid -from date: %v", err)
	}
	if opts.PeriodEnd, err = time.Parse(dateLayout, *to); err != nil {
		fatal("invalid -to date: %v", err)
	}

	out, err := ical.Export(set, opts)
	if err != nil {
		fatal("%v", err)
	}
	if err := os.WriteFile(*output, []byte(out), 0o644); err != nil {
		fatal("%v", err)
	}
	fmt.Printf("iCalendar written to %s\n", *output)
}
