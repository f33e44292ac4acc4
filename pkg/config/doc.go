/*
Package config loads and validates the Vigil watchdog configuration.

Configuration is layered: built-in defaults, then an optional YAML file,
then VIGIL_* environment variables which always win. Validation runs once
at startup and is fatal on error, so a misconfigured watchdog never enters
its probe loop.

Recognized environment variables:

	VIGIL_URL                health endpoint URL (required)
	VIGIL_INTERVAL_MS        check interval in milliseconds (default 60000)
	VIGIL_TIMEOUT_MS         probe timeout in milliseconds (default 10000)
	VIGIL_FAILURE_THRESHOLD  consecutive failures before remediation (default 3)
	VIGIL_AUTH_TYPE          none, basic or bearer (default none)
	VIGIL_AUTH_USERNAME      basic auth username
	VIGIL_AUTH_PASSWORD      basic auth password
	VIGIL_AUTH_TOKEN         bearer token
	VIGIL_CONTAINERS         comma-separated container names to restart
	VIGIL_DOCKER_HOST        Docker daemon host override
	VIGIL_METRICS_ADDR       prometheus listen address (empty disables)
	VIGIL_LOG_LEVEL          debug, info, warn or error
	VIGIL_LOG_FORMAT         json or console
*/
package config
