// Package discovery describes the machine it runs on as a Host asset and
// registers it with an access service.
package discovery

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/odpi/itinfra/internal/app/domain/properties"
	"github.com/odpi/itinfra/internal/app/handlers"
	"github.com/odpi/itinfra/internal/app/httpapi"
	"github.com/odpi/itinfra/internal/errors"
	"github.com/odpi/itinfra/internal/httputil"
)

// InfoFunc reports facts about the local host.
type InfoFunc func(ctx context.Context) (*host.InfoStat, error)

// Options shape the discovered properties.
type Options struct {
	// QualifiedNamePrefix is prepended to the host name. Defaults to "Host:".
	QualifiedNamePrefix string
	// DeployedImplementationType defaults to the virtualization system, or
	// "Physical Host" on bare metal.
	DeployedImplementationType string
	Description                string
}

// Discoverer reads host facts through gopsutil.
type Discoverer struct {
	info InfoFunc
}

// New returns a Discoverer for the local machine.
func New() *Discoverer {
	return &Discoverer{info: host.InfoWithContext}
}

// NewWithInfo returns a Discoverer reading facts from info.
func NewWithInfo(info InfoFunc) *Discoverer {
	return &Discoverer{info: info}
}

// Host describes the local machine.
func (d *Discoverer) Host(ctx context.Context, opts Options) (properties.HostProperties, error) {
	stat, err := d.info(ctx)
	if err != nil {
		return properties.HostProperties{}, errors.Internal("read host information", err)
	}
	if stat == nil || strings.TrimSpace(stat.Hostname) == "" {
		return properties.HostProperties{}, errors.Internal("host information has no host name", nil)
	}
	return FromInfo(stat, opts), nil
}

// FromInfo maps gopsutil host facts onto Host properties.
func FromInfo(stat *host.InfoStat, opts Options) properties.HostProperties {
	prefix := opts.QualifiedNamePrefix
	if prefix == "" {
		prefix = "Host:"
	}
	implType := opts.DeployedImplementationType
	if implType == "" {
		implType = "Physical Host"
		if stat.VirtualizationSystem != "" && stat.VirtualizationRole == "guest" {
			implType = stat.VirtualizationSystem
		}
	}

	extra := map[string]string{}
	put := func(key, value string) {
		if value != "" {
			extra[key] = value
		}
	}
	put("platform", stat.Platform)
	put("platformFamily", stat.PlatformFamily)
	put("kernelVersion", stat.KernelVersion)
	put("virtualizationSystem", stat.VirtualizationSystem)
	put("virtualizationRole", stat.VirtualizationRole)
	if stat.BootTime > 0 {
		extra["bootTime"] = time.Unix(int64(stat.BootTime), 0).UTC().Format(time.RFC3339)
	}
	if stat.Procs > 0 {
		extra["processes"] = strconv.FormatUint(stat.Procs, 10)
	}
	if len(extra) == 0 {
		extra = nil
	}

	version := strings.TrimSpace(stat.Platform + " " + stat.PlatformVersion)
	return properties.HostProperties{
		AssetProperties: properties.AssetProperties{
			ReferenceableProperties: properties.ReferenceableProperties{
				QualifiedName:        prefix + stat.Hostname,
				AdditionalProperties: extra,
			},
			Name:                       stat.Hostname,
			DisplayName:                stat.Hostname,
			Description:                opts.Description,
			DeployedImplementationType: implType,
		},
		HostID:          stat.HostID,
		OperatingSystem: stat.OS,
		PlatformVersion: version,
		Architecture:    stat.KernelArch,
	}
}

// Register creates the host on serverName through a remote access service
// and returns its GUID.
func Register(ctx context.Context, client *httputil.ServiceClient, serverName, userID string, source handlers.ExternalSource, props properties.HostProperties) (string, error) {
	if strings.TrimSpace(serverName) == "" {
		return "", errors.NullParameter("serverName", "registerHost")
	}
	if strings.TrimSpace(userID) == "" {
		return "", errors.NullParameter("userId", "registerHost")
	}
	path := fmt.Sprintf("/servers/%s/open-metadata/access-services/it-infrastructure/users/%s/hosts",
		url.PathEscape(serverName), url.PathEscape(userID))
	resp, err := client.Post(ctx, path, httpapi.ElementRequestBody[properties.HostProperties]{
		ExternalSource: source,
		Properties:     props,
	})
	if err != nil {
		return "", err
	}
	var out httpapi.GUIDResponse
	if err := httputil.DecodeResponse(resp, &out); err != nil {
		return "", err
	}
	return out.GUID, nil
}
