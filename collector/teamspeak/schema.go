// SPDX-License-Identifier: GPL-3.0-or-later

package teamspeak

import "github.com/netdata/netdata/go/ts3exporter/pkg/metricsink"

const (
	metricPrefix = "teamspeak_"

	// AdminNickname is the ServerQuery account the exporter itself logs in with.
	// Clients with this nickname are never reported.
	AdminNickname = "serveradmin"

	labelServerName        = "server_name"
	labelVirtualServerName = "virtualserver_name"

	metricPlayerOnline = metricPrefix + "player_online"
)

// serverInfoMetrics are the serverinfo keys exported as gauges, one per virtual server.
// https://yat.qa/resources/server-query-commands/#serverinfo
var serverInfoMetrics = []string{
	"connection_bandwidth_received_last_minute_total",
	"connection_bandwidth_received_last_second_total",
	"connection_bandwidth_sent_last_minute_total",
	"connection_bandwidth_sent_last_second_total",
	"connection_bytes_received_control",
	"connection_bytes_received_keepalive",
	"connection_bytes_received_speech",
	"connection_bytes_received_total",
	"connection_bytes_sent_control",
	"connection_bytes_sent_keepalive",
	"connection_bytes_sent_speech",
	"connection_bytes_sent_total",
	"connection_filetransfer_bandwidth_received",
	"connection_filetransfer_bandwidth_sent",
	"connection_filetransfer_bytes_received_total",
	"connection_filetransfer_bytes_sent_total",
	"connection_packets_received_control",
	"connection_packets_received_keepalive",
	"connection_packets_received_speech",
	"connection_packets_received_total",
	"connection_packets_sent_control",
	"connection_packets_sent_keepalive",
	"connection_packets_sent_speech",
	"connection_packets_sent_total",
	"virtualserver_channelsonline",
	"virtualserver_client_connections",
	"virtualserver_clientsonline",
	"virtualserver_maxclients",
	"virtualserver_month_bytes_downloaded",
	"virtualserver_month_bytes_uploaded",
	"virtualserver_query_client_connections",
	"virtualserver_queryclientsonline",
	"virtualserver_reserved_slots",
	"virtualserver_total_bytes_downloaded",
	"virtualserver_total_bytes_uploaded",
	"virtualserver_total_packetloss_control",
	"virtualserver_total_packetloss_keepalive",
	"virtualserver_total_packetloss_speech",
	"virtualserver_total_packetloss_total",
	"virtualserver_total_ping",
	"virtualserver_uptime",
}

// clientAttributes are the clientlist keys copied into the player_online labels.
// player_id and nickname are not sent by current servers and stay empty.
var clientAttributes = []string{
	"player_id",
	"nickname",
	"clid",
	"cid",
	"client_database_id",
	"client_nickname",
	"client_type",
	"client_away",
	"client_away_message",
	"client_flag_talking",
	"client_input_muted",
	"client_output_muted",
	"client_input_hardware",
	"client_output_hardware",
	"client_talk_power",
	"client_is_talker",
	"client_is_priority_speaker",
	"client_is_recording",
	"client_is_channel_commander",
	"client_unique_identifier",
	"client_servergroups",
	"client_channel_group_id",
	"client_channel_group_inherited_channel_id",
	"client_version",
	"client_platform",
	"client_idle_time",
	"client_created",
	"client_lastconnected",
	"client_country",
	"connection_client_ip",
	"client_badges",
}

// clientListOptions is the extended attribute set requested with clientlist.
var clientListOptions = []string{"uid", "away", "voice", "times", "groups", "info", "country", "ip", "badges"}

var (
	serverInfoLabels = []string{labelServerName, labelVirtualServerName}
	playerLabels     = append([]string{labelServerName, labelVirtualServerName}, clientAttributes...)

	serverInfoNames = func() map[string]string {
		m := make(map[string]string, len(serverInfoMetrics))
		for _, key := range serverInfoMetrics {
			m[key] = metricPrefix + key
		}
		return m
	}()
)

// Descs returns the gauge declarations for every metric the collector can emit.
func Descs() []metricsink.Desc {
	descs := make([]metricsink.Desc, 0, len(serverInfoMetrics)+1)

	for _, key := range serverInfoMetrics {
		descs = append(descs, metricsink.Desc{
			Name:   serverInfoNames[key],
			Help:   "TeamSpeak 3 virtual server " + key,
			Labels: serverInfoLabels,
		})
	}
	descs = append(descs, metricsink.Desc{
		Name:   metricPlayerOnline,
		Help:   "Online players",
		Labels: playerLabels,
	})

	return descs
}
