package k8s

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/fake"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

const (
	EnvFakeClient = "KUBERNETES_FAKE_CLIENTSET"
	EnvNamespace  = "MY_POD_NAMESPACE"

	userAgent     = "hostsmerge/config-watcher"
	namespaceFile = "/var/run/secrets/kubernetes.io/serviceaccount/namespace"
)

// Clientset returns a fake clientset when EnvFakeClient is set, the in-cluster
// client when running in a pod, and a kubeconfig client otherwise.
func Clientset() (kubernetes.Interface, error) {
	if os.Getenv(EnvFakeClient) != "" {
		return fake.NewSimpleClientset(), nil
	}
	config, err := restConfig()
	if err != nil {
		return nil, err
	}
	config.UserAgent = userAgent
	return kubernetes.NewForConfig(config)
}

func restConfig() (*rest.Config, error) {
	if InCluster() {
		return rest.InClusterConfig()
	}
	path, err := kubeconfigPath()
	if err != nil {
		return nil, err
	}
	return clientcmd.BuildConfigFromFlags("", path)
}

// kubeconfigPath prefers the first KUBECONFIG entry over ~/.kube/config.
func kubeconfigPath() (string, error) {
	if v := os.Getenv(clientcmd.RecommendedConfigPathEnvVar); v != "" {
		return filepath.SplitList(v)[0], nil
	}
	home := homeDir()
	if home == "" {
		return "", errors.New("couldn't find home directory")
	}
	return filepath.Join(home, clientcmd.RecommendedHomeDir, clientcmd.RecommendedFileName), nil
}

// Namespace returns the namespace to look up the config map in: EnvNamespace,
// then the pod service account namespace, then all namespaces.
func Namespace() string {
	if ns := os.Getenv(EnvNamespace); ns != "" {
		return ns
	}
	if !InCluster() {
		return ""
	}
	bs, err := os.ReadFile(namespaceFile)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(bs))
}

func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	return os.Getenv("USERPROFILE") // windows
}

func InCluster() bool {
	return os.Getenv("KUBERNETES_SERVICE_HOST") != "" && os.Getenv("KUBERNETES_SERVICE_PORT") != ""
}
