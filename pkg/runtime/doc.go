/*
Package runtime provides the container runtime client used for remediation.

The Runtime interface exposes exactly the two capabilities the watchdog
needs: list all containers (including stopped ones) and restart one by
identifier. DockerRuntime implements it over the Docker Engine API socket,
defaulting to /var/run/docker.sock on unix platforms and the
docker_engine named pipe on Windows.
*/
package runtime
