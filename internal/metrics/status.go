package metrics

import "github.com/goodnatureofminers/mintwatch-backend/internal/mint/model"

const namespace = "mintwatch"

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
