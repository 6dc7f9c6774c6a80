package iocache

import (
	"fmt"

	"github.com/relicdev/relic/schema"
)

// PrintCacheStatus prints status information for one cache store.
func PrintCacheStatus(name string, status schema.CacheStatus) {
	fmt.Printf("Store: %s\n", name)
	fmt.Printf("  Backend: %s\n", status.Backend)
	fmt.Printf("  Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("  Total Entries: %d\n", status.TotalEntries)
	fmt.Printf("  Live Entries: %d\n", status.LiveEntries)
	if status.TotalEntries > 0 {
		fmt.Printf("  Last Entry: %s\n", status.LastEntryTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("  Oldest Entry: %s\n", status.OldestEntryTime.Format("2006-01-02 15:04:05"))
	}
}
