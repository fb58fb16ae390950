package api

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// Server names a price feed world type
type Server string

const (
	ServerDefault    Server = "default"
	ServerDeadman    Server = "deadman"
	ServerFreshStart Server = "fresh-start"
)

var serverURLs = map[Server]string{
	ServerDefault:    "https://prices.runescape.wiki/api/v1/osrs",
	ServerDeadman:    "https://prices.runescape.wiki/api/v1/dmm",
	ServerFreshStart: "https://prices.runescape.wiki/api/v1/fsw",
}

const (
	mappingPath    = "/mapping"
	latestPath     = "/latest"
	timeseriesPath = "/timeseries"
)

// Servers returns the known server names, sorted
func Servers() []string {
	names := lo.Map(lo.Keys(serverURLs), func(s Server, _ int) string { return string(s) })
	sort.Strings(names)
	return names
}

// ServerURL returns the base URL of a server
func ServerURL(server Server) (string, error) {
	url, ok := serverURLs[server]
	if !ok {
		return "", fmt.Errorf("unknown server %q: must be one of %v", server, Servers())
	}
	return url, nil
}
