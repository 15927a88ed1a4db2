// Package metrics holds the Prometheus collectors of the toolkit. Components depend
// on small Observe interfaces and receive these types from the command wiring.
package metrics

import "github.com/goodnatureofminers/stas-toolkit/internal/model"

const namespace = "stas_toolkit"

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func networkLabel(network model.Network) string {
	if network == "" {
		return "unknown"
	}
	return string(network)
}
