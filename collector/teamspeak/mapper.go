// SPDX-License-Identifier: GPL-3.0-or-later

package teamspeak

import (
	"strconv"

	"github.com/netdata/netdata/go/ts3exporter/pkg/metricsink"
)

// MapServerInfo writes one gauge per known serverinfo key present in row.
// Values that do not parse as a float are skipped.
func MapServerInfo(serverName, vserverName string, row map[string]string, sink metricsink.Sink) {
	labels := map[string]string{
		labelServerName:        serverName,
		labelVirtualServerName: vserverName,
	}

	for _, key := range serverInfoMetrics {
		s, ok := row[key]
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			continue
		}
		sink.Upsert(serverInfoNames[key], labels, v)
	}
}

// MapClientRow writes the player_online sample for one clientlist row.
// The exporter's own login and other ServerQuery clients are skipped.
func MapClientRow(serverName, vserverName string, row map[string]string, sink metricsink.Sink) {
	if isQueryClient(row) {
		return
	}

	labels := make(map[string]string, len(playerLabels))
	labels[labelServerName] = serverName
	labels[labelVirtualServerName] = vserverName
	for _, key := range clientAttributes {
		labels[key] = row[key]
	}

	sink.Upsert(metricPlayerOnline, labels, 1)
}

func isQueryClient(row map[string]string) bool {
	// client_type: 0 voice client, 1 query client
	return row["client_nickname"] == AdminNickname || row["client_type"] == "1"
}
