package sysinfo

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// cpuSampleWindow is how long CPU usage is sampled.
const cpuSampleWindow = 500 * time.Millisecond

// HostProbes returns the probes for the local machine.
func HostProbes() []Probe {
	return []Probe{
		{Name: "Operating system", Collect: probeOS},
		{Name: "Runtime", Collect: probeRuntime},
		{Name: "Network", Collect: probeNetwork},
		{Name: "Disk", Collect: probeDisk},
		{Name: "Memory", Collect: probeMemory},
		{Name: "CPU", Collect: probeCPU},
	}
}

func probeOS(ctx context.Context) ([]Row, error) {
	h, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, err
	}
	arch := h.KernelArch
	if arch == "" {
		arch = runtime.GOARCH
	}
	return []Row{
		{"Name", h.OS},
		{"Platform", fmt.Sprintf("%s %s", h.Platform, h.PlatformVersion)},
		{"Kernel", h.KernelVersion},
		{"Architecture", arch},
		{"Uptime", formatUptime(time.Duration(h.Uptime) * time.Second)},
	}, nil
}

func probeRuntime(_ context.Context) ([]Row, error) {
	exe, err := os.Executable()
	if err != nil {
		exe = "unknown"
	}
	wd, err := os.Getwd()
	if err != nil {
		wd = "unknown"
	}
	return []Row{
		{"Go version", runtime.Version()},
		{"Target", runtime.GOOS + "/" + runtime.GOARCH},
		{"Executable", exe},
		{"Working dir", wd},
	}, nil
}

func probeNetwork(_ context.Context) ([]Row, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, err
	}
	return []Row{
		{"Hostname", hostname},
		{"Primary IP", primaryIP()},
	}, nil
}

func probeDisk(ctx context.Context) ([]Row, error) {
	d, err := disk.UsageWithContext(ctx, diskRoot())
	if err != nil {
		return nil, err
	}
	return []Row{
		{"Mount", d.Path},
		{"Total", formatGB(d.Total)},
		{"Used", formatGB(d.Used)},
		{"Free", formatGB(d.Free)},
		{"Usage", fmt.Sprintf("%.1f%%", d.UsedPercent)},
	}, nil
}

func probeMemory(ctx context.Context) ([]Row, error) {
	v, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}
	return []Row{
		{"Total", formatGB(v.Total)},
		{"Available", formatGB(v.Available)},
		{"Used", formatGB(v.Used)},
		{"Usage", fmt.Sprintf("%.1f%%", v.UsedPercent)},
	}, nil
}

func probeCPU(ctx context.Context) ([]Row, error) {
	model, speed := "unknown", "unknown"
	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		model = infos[0].ModelName
		speed = formatMHz(infos[0].Mhz)
	}
	cores, err := cpu.CountsWithContext(ctx, false)
	if err != nil {
		return nil, err
	}
	threads, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return nil, err
	}
	usage := "N/A"
	if pct, err := cpu.PercentWithContext(ctx, cpuSampleWindow, false); err == nil && len(pct) > 0 {
		usage = fmt.Sprintf("%.1f%%", pct[0])
	}
	return []Row{
		{"Model", model},
		{"Cores/threads", fmt.Sprintf("%d/%d", cores, threads)},
		{"Frequency", speed},
		{"Usage", usage},
	}, nil
}

// Usage samples overall CPU and RAM utilisation in percent.
func Usage(ctx context.Context, window time.Duration) (cpuPct, ramPct float64, err error) {
	pct, err := cpu.PercentWithContext(ctx, window, false)
	if err != nil {
		return 0, 0, err
	}
	if len(pct) > 0 {
		cpuPct = pct[0]
	}
	v, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return cpuPct, 0, err
	}
	return cpuPct, v.UsedPercent, nil
}

// primaryIP returns the local address used for outbound traffic. Dialing
// UDP sends no packets; it only selects a route.
func primaryIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:53")
	if err != nil {
		addrs, err := net.InterfaceAddrs()
		if err == nil {
			for _, address := range addrs {
				if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
					return ipnet.IP.String()
				}
			}
		}
		return "127.0.0.1"
	}
	defer conn.Close()
	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
		return addr.IP.String()
	}
	return "127.0.0.1"
}

// diskRoot is "/" on Unix and the volume of the working directory on
// Windows.
func diskRoot() string {
	if runtime.GOOS != "windows" {
		return "/"
	}
	wd, err := os.Getwd()
	if err != nil {
		return `C:\`
	}
	return filepath.VolumeName(wd) + `\`
}

func formatGB(b uint64) string {
	return fmt.Sprintf("%.1f GB", float64(b)/(1<<30))
}

func formatMHz(mhz float64) string {
	if mhz > 1000 {
		return fmt.Sprintf("%.2f GHz", mhz/1000.0)
	}
	return fmt.Sprintf("%.0f MHz", mhz)
}

func formatUptime(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	switch {
	case days > 0:
		return fmt.Sprintf("%d days, %d hours", days, hours)
	case hours > 0:
		return fmt.Sprintf("%d hours, %d minutes", hours, minutes)
	default:
		return fmt.Sprintf("%d minutes", minutes)
	}
}
